package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
)

// ErrUnknownTopic is returned by StaticGenerator for a topic it has no
// questions for.
var ErrUnknownTopic = errors.New("no questions for topic")

// StaticGenerator serves questions from a fixed in-memory bank. It backs
// offline play when no LLM provider is configured.
type StaticGenerator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	bank map[string][]Question
}

// NewStaticGenerator creates a generator over the built-in question bank.
func NewStaticGenerator(rng *rand.Rand) *StaticGenerator {
	return NewStaticGeneratorFrom(rng, builtinBank)
}

// NewStaticGeneratorFrom creates a generator over questions, grouped by
// their Topic field. A nil rng uses a randomly seeded source.
func NewStaticGeneratorFrom(rng *rand.Rand, questions []Question) *StaticGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	bank := make(map[string][]Question)
	for _, q := range questions {
		bank[q.Topic] = append(bank[q.Topic], q)
	}
	return &StaticGenerator{rng: rng, bank: bank}
}

// Generate returns a random bank question about topic.
func (g *StaticGenerator) Generate(ctx context.Context, topic string) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	qs := g.bank[topic]
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}

	g.mu.Lock()
	q := qs[g.rng.IntN(len(qs))]
	g.mu.Unlock()

	q.Options = slices.Clone(q.Options)
	return &q, nil
}

var builtinBank = []Question{
	{Topic: "Indonesian Language", Text: "Apa sinonim dari kata \"cerdas\"?", Options: []string{"Pintar", "Malas", "Lambat", "Ceroboh"}, CorrectIndex: 0},
	{Topic: "Indonesian Language", Text: "Kata \"membaca\" termasuk jenis kata apa?", Options: []string{"Kata benda", "Kata kerja", "Kata sifat", "Kata keterangan"}, CorrectIndex: 1},
	{Topic: "Indonesian Language", Text: "Apa antonim dari kata \"tinggi\"?", Options: []string{"Besar", "Panjang", "Rendah", "Lebar"}, CorrectIndex: 2},

	{Topic: "Indonesian History", Text: "Kapan Indonesia memproklamasikan kemerdekaannya?", Options: []string{"17 Agustus 1945", "20 Mei 1908", "28 Oktober 1928", "1 Juni 1945"}, CorrectIndex: 0},
	{Topic: "Indonesian History", Text: "Siapa presiden pertama Republik Indonesia?", Options: []string{"Soeharto", "B.J. Habibie", "Mohammad Hatta", "Soekarno"}, CorrectIndex: 3},
	{Topic: "Indonesian History", Text: "Peristiwa Sumpah Pemuda terjadi pada tahun berapa?", Options: []string{"1908", "1928", "1945", "1966"}, CorrectIndex: 1},

	{Topic: "Basic Mathematics", Text: "Berapakah hasil dari 7 x 8?", Options: []string{"54", "56", "58", "64"}, CorrectIndex: 1},
	{Topic: "Basic Mathematics", Text: "Berapakah hasil dari 144 : 12?", Options: []string{"11", "14", "12", "13"}, CorrectIndex: 2},
	{Topic: "Basic Mathematics", Text: "Berapa jumlah sudut dalam sebuah segitiga?", Options: []string{"180 derajat", "90 derajat", "270 derajat", "360 derajat"}, CorrectIndex: 0},

	{Topic: "Social Studies", Text: "Lembaga apa yang bertugas membuat undang-undang di Indonesia?", Options: []string{"Mahkamah Agung", "DPR", "BPK", "KPK"}, CorrectIndex: 1},
	{Topic: "Social Studies", Text: "Kegiatan menukar barang dengan barang disebut apa?", Options: []string{"Ekspor", "Impor", "Barter", "Kredit"}, CorrectIndex: 2},
	{Topic: "Social Studies", Text: "Apa semboyan negara Indonesia?", Options: []string{"Tut Wuri Handayani", "Gotong Royong", "Merdeka atau Mati", "Bhinneka Tunggal Ika"}, CorrectIndex: 3},

	{Topic: "Natural Sciences", Text: "Planet manakah yang paling dekat dengan Matahari?", Options: []string{"Merkurius", "Venus", "Bumi", "Mars"}, CorrectIndex: 0},
	{Topic: "Natural Sciences", Text: "Proses tumbuhan membuat makanan dengan bantuan cahaya matahari disebut apa?", Options: []string{"Respirasi", "Fotosintesis", "Evaporasi", "Transpirasi"}, CorrectIndex: 1},
	{Topic: "Natural Sciences", Text: "Air membeku pada suhu berapa derajat Celsius?", Options: []string{"100", "10", "-10", "0"}, CorrectIndex: 3},

	{Topic: "Indonesian Geography", Text: "Apa ibu kota Provinsi Jawa Barat?", Options: []string{"Semarang", "Bandung", "Surabaya", "Serang"}, CorrectIndex: 1},
	{Topic: "Indonesian Geography", Text: "Pulau terbesar yang seluruh wilayahnya milik Indonesia adalah?", Options: []string{"Jawa", "Bali", "Sumatra", "Madura"}, CorrectIndex: 2},
	{Topic: "Indonesian Geography", Text: "Danau Toba terletak di provinsi mana?", Options: []string{"Sumatra Utara", "Sumatra Barat", "Aceh", "Riau"}, CorrectIndex: 0},

	{Topic: "Indonesian Culture", Text: "Tari Kecak berasal dari daerah mana?", Options: []string{"Jawa Tengah", "Sulawesi Selatan", "Papua", "Bali"}, CorrectIndex: 3},
	{Topic: "Indonesian Culture", Text: "Rumah adat Minangkabau disebut apa?", Options: []string{"Rumah Gadang", "Joglo", "Honai", "Tongkonan"}, CorrectIndex: 0},
	{Topic: "Indonesian Culture", Text: "Alat musik angklung terbuat dari bahan apa?", Options: []string{"Kayu jati", "Logam", "Bambu", "Kulit hewan"}, CorrectIndex: 2},

	{Topic: "World General Knowledge", Text: "Apa ibu kota Jepang?", Options: []string{"Osaka", "Tokyo", "Kyoto", "Seoul"}, CorrectIndex: 1},
	{Topic: "World General Knowledge", Text: "Samudra terluas di dunia adalah?", Options: []string{"Samudra Hindia", "Samudra Atlantik", "Samudra Arktik", "Samudra Pasifik"}, CorrectIndex: 3},
	{Topic: "World General Knowledge", Text: "Berapa jumlah benua di dunia?", Options: []string{"Lima", "Enam", "Tujuh", "Delapan"}, CorrectIndex: 2},
}
