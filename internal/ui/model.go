package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/skycast/internal/advice"
	"github.com/ngmaloney/skycast/internal/models"
	"github.com/ngmaloney/skycast/internal/pipeline"
)

const msgInvalidDate = "❌ Invalid date. Please use YYYY-MM-DD format (e.g., 2025-07-04)"

// Predictor runs one prediction
type Predictor interface {
	Predict(ctx context.Context, req models.FlightRequest) (models.PredictionResult, error)
}

// SetupFunc prepares reference data and models, reporting progress lines on
// progress, and returns the predictor to use
type SetupFunc func(progress chan<- string) (Predictor, error)

// AppState represents the current state of the application
type AppState int

const (
	StateProvisioning AppState = iota // Loading reference data and models
	StateForm                         // Flight form, with the last result below it
	StateLoading                      // Prediction running
	StateAdvice                       // Travel advice
	StateError                        // Setup failed
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	setup     SetupFunc
	predictor Predictor
	timeout   time.Duration
	now       func() time.Time

	// Form
	inputs []textinput.Model
	focus  int

	// Last outcome
	resultText string
	resultErr  bool
	relevant   []advice.Tip

	// Provisioning
	spinner         spinner.Model
	provisionStatus string
	setupChannels   *setupStartedMsg
}

// NewModel creates a new application model. setup runs once from Init.
func NewModel(setup SetupFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:   StateProvisioning,
		setup:   setup,
		timeout: pipeline.DefaultRequestTimeout,
		now:     time.Now,
		inputs:  newFormInputs(time.Now()),
		spinner: s,
	}
}

// Init starts setup
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startSetup(m.setup))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	switch msg := msg.(type) {
	case setupStartedMsg:
		m.state = StateProvisioning
		m.provisionStatus = "Loading reference data..."
		m.setupChannels = &msg
		return m, tea.Batch(
			waitForSetupStatus(msg.progressChan),
			waitForSetupResult(msg.resultChan),
		)

	case setupStatusMsg:
		m.provisionStatus = string(msg)
		if m.setupChannels != nil {
			return m, waitForSetupStatus(m.setupChannels.progressChan)
		}
		return m, nil

	case setupResultMsg:
		m.setupChannels = nil
		if msg.err != nil {
			m.err = fmt.Errorf("setup failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.predictor = msg.predictor
		m.state = StateForm
		return m, textinput.Blink

	case predictionMsg:
		m.state = StateForm
		if msg.err != nil {
			m.resultText = pipeline.FormatError(msg.err)
			m.resultErr = true
			m.relevant = nil
		} else {
			m.resultText = pipeline.FormatResult(msg.result)
			m.resultErr = false
			m.relevant = advice.Relevant(msg.req)
		}
		return m, textinput.Blink
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateForm:
			return m.handleFormInput(keyMsg)

		case StateAdvice:
			if keyMsg.Type == tea.KeyEsc || keyMsg.String() == "ctrl+a" {
				m.state = StateForm
				return m, textinput.Blink
			}
			return m, nil

		case StateError:
			if keyMsg.String() == "q" || keyMsg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}
		return m, nil
	}

	switch m.state {
	case StateProvisioning, StateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case StateForm:
		return m, m.updateInputs(msg)
	}

	return m, nil
}

// handleFormInput handles keyboard input on the flight form
func (m Model) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+a":
		m.state = StateAdvice
		return m, nil

	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case "enter":
		req, ok := buildRequest(m.inputs, m.now())
		if !ok {
			m.resultText = msgInvalidDate
			m.resultErr = true
			m.relevant = nil
			return m, nil
		}
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, runPrediction(m.predictor, req, m.timeout))
	}

	return m, m.updateInputs(msg)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// updateInputs forwards msg to the focused input only
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateProvisioning:
		return m.viewProvisioning()
	case StateForm:
		return m.viewForm()
	case StateLoading:
		return m.viewLoading()
	case StateAdvice:
		return m.viewAdvice()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewProvisioning renders the startup screen
func (m Model) viewProvisioning() string {
	title := titleStyle.Render("✈️ SkyCast Setup")

	status := mutedStyle.Render(m.provisionStatus)
	info := helpStyle.Render("Preparing airport reference data and prediction models...")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), status),
		"",
		info,
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := lipgloss.NewStyle().
		Foreground(colorDanger).
		Bold(true).
		Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Q/Esc: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// viewForm renders the flight form and the last result
func (m Model) viewForm() string {
	title := titleStyle.Render("✈️ SkyCast")
	subtitle := mutedStyle.Render("Flight Delay & Cancellation Prediction")

	var rows []string
	for i, input := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = focusedLabelStyle.Render(fieldLabels[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, input.View()))
	}
	form := formBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	sections := []string{title, subtitle, "", form}

	if m.resultText != "" {
		if m.resultErr {
			sections = append(sections, errorBoxStyle.Render(m.resultText))
		} else {
			sections = append(sections, resultBoxStyle.Render(m.resultText))
		}
	}

	for _, tip := range m.relevant {
		sections = append(sections, advisoryStyle.Render("💡 "+tip.String()))
	}

	help := helpStyle.Render("Tab/↑/↓: Move • Enter: Predict • Ctrl+A: Travel advice • Ctrl+C: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewLoading renders the spinner while a prediction runs
func (m Model) viewLoading() string {
	origin := strings.ToUpper(m.inputs[fieldOrigin].Value())
	dest := strings.ToUpper(m.inputs[fieldDestination].Value())
	return fmt.Sprintf("%s Predicting %s → %s...", m.spinner.View(), origin, dest)
}

// viewAdvice renders the travel advice list
func (m Model) viewAdvice() string {
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	sections := []string{titleStyle.Render("✈️ Travel Advice"), ""}
	for _, tip := range advice.All() {
		sections = append(sections,
			sectionHeaderStyle.Render(tip.Title),
			adviceItemStyle.Width(width).Render(tip.Body),
		)
	}
	sections = append(sections, successStyle.Render("Safe travels!"))
	sections = append(sections, helpStyle.Render("Esc: Back to prediction • Ctrl+C: Quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
