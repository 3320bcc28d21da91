package wizard

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/joshyorko/sakdash/pretty"
)

func interactively(t *testing.T, typed string) {
	original := pretty.Interactive
	pretty.Interactive = true
	useInput(strings.NewReader(typed))
	t.Cleanup(func() {
		pretty.Interactive = original
		useInput(os.Stdin)
	})
}

func TestConfirmWithForce(t *testing.T) {
	result, err := Confirm("Test question", true)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !result {
		t.Error("Expected true when force is set")
	}
}

func TestConfirmNonInteractiveWithoutForce(t *testing.T) {
	original := pretty.Interactive
	defer func() { pretty.Interactive = original }()
	pretty.Interactive = false

	result, err := Confirm("Test question", false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("Expected ErrConfirmationRequired, got: %v", err)
	}
	if result {
		t.Error("Expected false when non-interactive without force")
	}
}

func TestConfirmReadsAnswers(t *testing.T) {
	interactively(t, "maybe\ny\n")
	result, err := Confirm("Renew?", false)
	if err != nil || !result {
		t.Errorf("Expected yes after one bad answer, got %v, %v", result, err)
	}

	interactively(t, "\n")
	result, err = Confirm("Renew?", false)
	if err != nil || result {
		t.Errorf("Expected default no, got %v, %v", result, err)
	}
}
