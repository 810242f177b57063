package trivia

import (
	"errors"
	"testing"
)

func testQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{Topic: "T", Text: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1}
	}
	return qs
}

func TestRound_ThreeWrongAnswersEndTheGame(t *testing.T) {
	r, err := NewRound(testQuestions(10), 3)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}

	for i := range 3 {
		res, err := r.Answer(0)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if res.Correct || res.CorrectText != "b" {
			t.Fatalf("answer %d: unexpected result %+v", i, res)
		}
		if res.GameOver != (i == 2) {
			t.Fatalf("answer %d: GameOver = %v", i, res.GameOver)
		}
		if i < 2 {
			if done, err := r.Advance(); err != nil || done {
				t.Fatalf("advance %d: done=%v err=%v", i, done, err)
			}
		}
	}

	if r.Lives() != 0 || r.Phase() != PhaseGameOver {
		t.Fatalf("lives=%d phase=%s", r.Lives(), r.Phase())
	}
	if _, err := r.Answer(1); !errors.Is(err, ErrRoundOver) {
		t.Fatalf("expected ErrRoundOver after game over, got %v", err)
	}
	if done, err := r.Advance(); err != nil || !done {
		t.Fatalf("advance after game over: done=%v err=%v", done, err)
	}
}

func TestRound_CompletesAfterLastQuestion(t *testing.T) {
	r, _ := NewRound(testQuestions(3), 3)

	for i := range 3 {
		if r.Index() != i {
			t.Fatalf("Index() = %d, want %d", r.Index(), i)
		}
		res, err := r.Answer(1)
		if err != nil || !res.Correct {
			t.Fatalf("answer %d: %+v, %v", i, res, err)
		}
		done, err := r.Advance()
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if done != (i == 2) {
			t.Fatalf("advance %d: done = %v", i, done)
		}
	}
	if r.Phase() != PhaseCompleted || r.CorrectCount() != 3 || r.Lives() != 3 {
		t.Fatalf("phase=%s correct=%d lives=%d", r.Phase(), r.CorrectCount(), r.Lives())
	}
}

func TestRound_ProtocolErrors(t *testing.T) {
	r, _ := NewRound(testQuestions(2), 3)

	if _, err := r.Advance(); !errors.Is(err, ErrNotAnswered) {
		t.Fatalf("expected ErrNotAnswered, got %v", err)
	}
	for _, choice := range []int{-1, 4} {
		if _, err := r.Answer(choice); !errors.Is(err, ErrInvalidChoice) {
			t.Fatalf("choice %d: expected ErrInvalidChoice, got %v", choice, err)
		}
	}
	if r.Answered() {
		t.Fatal("an invalid choice must not count as an answer")
	}
	if _, err := r.Answer(0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := r.Answer(1); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if r.Lives() != 2 {
		t.Fatalf("a rejected second answer must not change lives, got %d", r.Lives())
	}
}

func TestNewRound_Validation(t *testing.T) {
	if _, err := NewRound(nil, 3); err == nil {
		t.Error("expected error for no questions")
	}
	if _, err := NewRound(testQuestions(1), 0); err == nil {
		t.Error("expected error for zero lives")
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:      "idle",
		PhaseLoading:   "loading",
		PhaseActive:    "active",
		PhaseCompleted: "completed",
		PhaseGameOver:  "game_over",
		Phase(42):      "Phase(42)",
	}
	for p, want := range tests {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(p), p.String(), want)
		}
	}
}
