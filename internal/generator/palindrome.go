package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/san-kum/algoviz/internal/step"
)

func ValidPalindromeAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "valid-palindrome",
		Title:   "Valid Palindrome",
		Summary: "two pointers over the alphanumeric characters",
		Data:    String,
		Params: []ParamSpec{
			{Name: "text", Label: "Text", Type: String, Default: "A man, a plan, a canal: Panama"},
		},
		Table: func(params Params) []step.Value {
			return step.Texts(strings.Split(cleanText(palindromeText(params)), "")...)
		},
		Generate: func(_ []step.Value, params Params) step.Sequence {
			return ValidPalindrome(palindromeText(params))
		},
	})
}

func palindromeText(params Params) string {
	var p struct {
		Text string `param:"text"`
	}
	_ = params.Decode(&p)
	return p.Text
}

// cleanText lowercases s and drops everything but ASCII letters and digits.
func cleanText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidPalindrome(text string) step.Sequence {
	cleaned := cleanText(text)
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Cleaned %q to %q", text, cleaned)).
			WithVars("cleaned", cleaned).
			WithCode("strings.ToLower + keep [a-z0-9]"),
	}

	left, right := 0, len(cleaned)-1
	for left < right {
		ptrs := []step.Pointer{{Name: "L", Index: left, Color: "blue"}, {Name: "R", Index: right, Color: "blue"}}
		seq = append(seq, step.Compare(fmt.Sprintf("Compare %q at %d with %q at %d", cleaned[left], left, cleaned[right], right), left, right).
			WithPointers(ptrs...).
			WithVars("left", left, "right", right))

		if cleaned[left] != cleaned[right] {
			return append(seq, step.Mark(fmt.Sprintf("Mismatch: %q != %q, not a palindrome", cleaned[left], cleaned[right]), step.RoleTarget, left, right).
				WithVars("result", false))
		}
		seq = append(seq, step.Mark("Match, move both pointers inward", step.RoleSorted, left, right).
			WithCode("left++; right--"))
		left++
		right--
	}

	return append(seq, step.Found("Every pair matched, it is a palindrome", span(0, len(cleaned)-1)...).
		WithVars("result", true))
}
