package validation

// EmailCase is a sample input paired with the result the email pattern must
// produce for it.
type EmailCase struct {
	Input string `json:"input" yaml:"input"`
	Want  bool   `json:"want" yaml:"want"`
	Got   bool   `json:"got" yaml:"got"`
}

// Passed reports whether the pattern agreed with the expectation.
func (c EmailCase) Passed() bool {
	return c.Want == c.Got
}

var emailSamples = []EmailCase{
	{Input: "test@example.com", Want: true},
	{Input: "invalid-email", Want: false},
	{Input: "test@", Want: false},
	{Input: "@example.com", Want: false},
	{Input: "test@domain", Want: false},
}

// EmailSelfTest runs the compiled pattern against the reference samples and
// returns each case with its observed result.
func EmailSelfTest() []EmailCase {
	out := make([]EmailCase, len(emailSamples))
	for i, sample := range emailSamples {
		sample.Got = emailPattern.MatchString(sample.Input)
		out[i] = sample
	}
	return out
}
