package interactive

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sakdash/render"
)

// Styles holds all the lipgloss styles for the interactive TUI.
type Styles struct {
	theme Theme

	// Text styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style

	// Layout
	Divider lipgloss.Style

	// Logo/Header
	LogoText   lipgloss.Style
	LogoSubtle lipgloss.Style

	// Breadcrumbs
	CrumbActive   lipgloss.Style
	CrumbInactive lipgloss.Style

	// Status indicators
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Menu/Help bar
	MenuKey       lipgloss.Style
	MenuDesc      lipgloss.Style
	MenuSeparator lipgloss.Style

	// List items
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemDesc     lipgloss.Style

	// Tree
	TreeBranch lipgloss.Style
	TreeLeaf   lipgloss.Style

	// Panels
	Panel       lipgloss.Style
	PanelActive lipgloss.Style
	PanelTitle  lipgloss.Style

	// Form
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	FieldInert   lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Spinner
	Spinner lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	Badge lipgloss.Style
}

// NewStyles creates a new Styles instance using the DefaultTheme
func NewStyles() *Styles {
	return NewStylesWithTheme(DefaultTheme())
}

// NewStylesWithTheme creates styles using a specific theme
func NewStylesWithTheme(theme Theme) *Styles {
	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(36)

	return &Styles{
		theme: theme,

		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtle:    lipgloss.NewStyle().Foreground(theme.TextMuted),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Accent:    lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Success:   lipgloss.NewStyle().Foreground(theme.Success),
		Warning:   lipgloss.NewStyle().Foreground(theme.Warning),
		Info:      lipgloss.NewStyle().Foreground(theme.Info),

		Divider: lipgloss.NewStyle().Foreground(theme.BorderDim),

		LogoText: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TextBright).
			Background(theme.Primary),
		LogoSubtle: lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			PaddingLeft(1),

		CrumbActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TextBright).
			Background(theme.Secondary),
		CrumbInactive: lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			Background(theme.Surface),

		StatusKey:   lipgloss.NewStyle().Foreground(theme.TextMuted),
		StatusValue: lipgloss.NewStyle().Foreground(theme.Accent),

		MenuKey:       lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		MenuDesc:      lipgloss.NewStyle().Foreground(theme.Text),
		MenuSeparator: lipgloss.NewStyle().Foreground(theme.BorderDim),

		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(theme.Text),
		ListItemSelected: lipgloss.NewStyle().
			PaddingLeft(2).
			Bold(true).
			Foreground(theme.TextBright).
			Background(theme.Highlight),
		ListItemDesc: lipgloss.NewStyle().Foreground(theme.TextMuted),

		TreeBranch: lipgloss.NewStyle().Foreground(theme.Border),
		TreeLeaf:   lipgloss.NewStyle().Foreground(theme.Accent),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		PanelActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),

		FieldLabel:   lipgloss.NewStyle().Foreground(theme.TextMuted).Width(16),
		FieldFocused: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(16),
		FieldInert:   lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),

		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		HelpDesc: lipgloss.NewStyle().Foreground(theme.TextMuted),

		Spinner: lipgloss.NewStyle().Foreground(theme.Accent),

		ToastInfo:    toast.BorderForeground(theme.Info),
		ToastSuccess: toast.BorderForeground(theme.Success),
		ToastWarning: toast.BorderForeground(theme.Warning),
		ToastError:   toast.BorderForeground(theme.Error),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Accent).
			Padding(0, 1).
			Bold(true),
	}
}

// Results converts the theme into styles for the response renderers.
func (s *Styles) Results() render.Styles {
	return render.Styles{
		Error:  s.Error,
		Faint:  s.Subtle,
		Header: lipgloss.NewStyle().Bold(true).Foreground(s.theme.Secondary),
		Border: lipgloss.NewStyle().Foreground(s.theme.Border),
		Bar:    lipgloss.NewStyle().Foreground(s.theme.Success),
	}
}

// ToastStyle returns the border style for a toast type
func (s *Styles) ToastStyle(kind ToastType) lipgloss.Style {
	switch kind {
	case ToastSuccess:
		return s.ToastSuccess
	case ToastWarning:
		return s.ToastWarning
	case ToastError:
		return s.ToastError
	default:
		return s.ToastInfo
	}
}
