package tracker

import "context"

// Question describes one free-text prompt.
type Question struct {
	Title       string
	Placeholder string
}

var (
	// HoursQuestion asks for the hours of a manual entry.
	HoursQuestion = Question{Title: "Enter hours worked", Placeholder: "e.g., 1.5"}
	// DescriptionQuestion asks what the work was.
	DescriptionQuestion = Question{Title: "Enter a description for this work", Placeholder: "e.g., Working on feature X"}
)

// Prompter collects free-text input from the user. ok is false when the user
// dismissed the prompt; err is reserved for failures of the prompt itself.
type Prompter interface {
	Prompt(ctx context.Context, q Question) (value string, ok bool, err error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, q Question) (string, bool, error)

func (f PrompterFunc) Prompt(ctx context.Context, q Question) (string, bool, error) {
	return f(ctx, q)
}

// Answers replies to each question in turn and reports a cancel once it runs
// out. Handy for scripted input.
func Answers(values ...string) Prompter {
	i := 0
	return PrompterFunc(func(ctx context.Context, q Question) (string, bool, error) {
		if i >= len(values) {
			return "", false, nil
		}
		v := values[i]
		i++
		return v, true, nil
	})
}
