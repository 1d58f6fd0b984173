package render

// Terminal color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

type theme struct {
	x      string
	o      string
	empty  string
	header string
	notice string
	reset  string
}

var (
	plainTheme = theme{}
	colorTheme = theme{
		x:      Blue,
		o:      Red,
		empty:  Gray,
		header: Cyan,
		notice: Yellow,
		reset:  Reset,
	}
)

func (t theme) paint(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + t.reset
}

// Prompt returns a colored prompt string
func Prompt(text string, color bool) string {
	if !color {
		return text + " > "
	}
	return Yellow + text + " > " + Reset
}
