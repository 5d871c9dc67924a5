package vanilla

// ChromeClass is a typed identifier for the CSS classes the markup carries.
type ChromeClass string

const (
	ClassForm         ChromeClass = "contact-form"
	ClassHeader       ChromeClass = "contact-form-header"
	ClassGroup        ChromeClass = "form-group"
	ClassErrors       ChromeClass = "form-errors"
	ClassErrorMessage ChromeClass = "error-message"
	ClassSubmit       ChromeClass = "submit-btn"
	ClassBanner       ChromeClass = "success-message"

	// State markers toggled on inputs and the banner.
	ClassError   ChromeClass = "error"
	ClassSuccess ChromeClass = "success"
	ClassShow    ChromeClass = "show"
)

type chromeClasses struct {
	Form         string `json:"form"`
	Header       string `json:"header"`
	Group        string `json:"group"`
	Errors       string `json:"errors"`
	ErrorMessage string `json:"error_message"`
	Submit       string `json:"submit"`
}

func defaultChromeClasses() chromeClasses {
	return chromeClasses{
		Form:         string(ClassForm),
		Header:       string(ClassHeader),
		Group:        string(ClassGroup),
		Errors:       string(ClassErrors),
		ErrorMessage: string(ClassErrorMessage),
		Submit:       string(ClassSubmit),
	}
}
