package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#b34700")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	cookTable   table.Model
	phaseTable  table.Model
	cooks       []Cook
	selected    *Cook
	prediction  *Prediction
	spinner     spinner.Model
	client      *ApiClient
	loading     bool
	currentView string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Messages produced by API commands
type (
	cooksLoadedMsg      []Cook
	cookLoadedMsg       *Cook
	predictionLoadedMsg *Prediction
	apiErrMsg           string
)

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Cooks", desc: "Browse planned and running cooks"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "pitplan"

	cookColumns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Cut", Width: 16},
		{Title: "Weight", Width: 8},
		{Title: "Smoker", Width: 10},
		{Title: "Status", Width: 10},
	}
	cookTable := table.New(table.WithColumns(cookColumns), table.WithFocused(true))

	phaseColumns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Phase", Width: 16},
		{Title: "Start", Width: 12},
		{Title: "End", Width: 12},
		{Title: "Minutes", Width: 10},
		{Title: "Confidence", Width: 10},
	}
	phaseTable := table.New(table.WithColumns(phaseColumns))

	return Model{
		mainMenu:    mainMenu,
		cookTable:   cookTable,
		phaseTable:  phaseTable,
		spinner:     s,
		client:      NewApiClient(),
		currentView: "menu",
	}
}

// Init starts the spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Commands

func (m Model) loadCooks() tea.Cmd {
	return func() tea.Msg {
		cooks, err := m.client.ListCooks()
		if err != nil {
			return apiErrMsg(err.Error())
		}
		return cooksLoadedMsg(cooks)
	}
}

func (m Model) loadCook(id string) tea.Cmd {
	return func() tea.Msg {
		cook, err := m.client.GetCook(id)
		if err != nil {
			return apiErrMsg(err.Error())
		}
		return cookLoadedMsg(cook)
	}
}

func (m Model) loadPrediction(id string) tea.Cmd {
	return func() tea.Msg {
		prediction, err := m.client.GetPrediction(id)
		if err != nil {
			return apiErrMsg(err.Error())
		}
		return predictionLoadedMsg(prediction)
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		m.cookTable.SetHeight(msg.Height - v - 4)
		m.phaseTable.SetHeight(msg.Height - v - 6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cooksLoadedMsg:
		m.loading = false
		m.error = ""
		m.cooks = msg
		rows := make([]table.Row, 0, len(msg))
		for _, cook := range msg {
			rows = append(rows, table.Row{
				cook.Name,
				cook.MeatCut,
				fmt.Sprintf("%.1f lb", cook.WeightLb),
				cook.SmokerType,
				cook.Status,
			})
		}
		m.cookTable.SetRows(rows)
		m.currentView = "cooks"
		return m, nil

	case cookLoadedMsg:
		m.loading = false
		m.error = ""
		m.selected = msg
		if msg.Plan != nil {
			rows := make([]table.Row, 0, len(msg.Plan.Phases))
			for _, phase := range msg.Plan.Phases {
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", phase.Order),
					phase.Name,
					phase.StartTime.Local().Format("Mon 15:04"),
					phase.EndTime.Local().Format("Mon 15:04"),
					fmt.Sprintf("%d-%d", phase.Duration.Min, phase.Duration.Max),
					phase.Confidence,
				})
			}
			m.phaseTable.SetRows(rows)
		}
		m.currentView = "plan"
		return m, nil

	case predictionLoadedMsg:
		m.loading = false
		m.error = ""
		m.prediction = msg
		m.currentView = "prediction"
		return m, nil

	case apiErrMsg:
		m.loading = false
		m.error = string(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.currentView == "menu" {
			return m, tea.Quit
		}
		m.currentView = "menu"
		return m, nil

	case "esc":
		switch m.currentView {
		case "plan", "prediction":
			m.currentView = "cooks"
		default:
			m.currentView = "menu"
		}
		return m, nil

	case "enter":
		switch m.currentView {
		case "menu":
			selected, ok := m.mainMenu.SelectedItem().(item)
			if !ok {
				return m, nil
			}
			switch selected.title {
			case "Cooks":
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadCooks())
			case "Exit":
				return m, tea.Quit
			}
		case "cooks":
			idx := m.cookTable.Cursor()
			if idx >= 0 && idx < len(m.cooks) {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadCook(m.cooks[idx].CookID))
			}
		}

	case "p":
		if m.currentView == "plan" && m.selected != nil {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadPrediction(m.selected.CookID))
		}

	case "r":
		if m.currentView == "cooks" {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCooks())
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "menu":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "cooks":
		m.cookTable, cmd = m.cookTable.Update(msg)
	case "plan":
		m.phaseTable, cmd = m.phaseTable.Update(msg)
	}
	return m, cmd
}

// View renders the current screen
func (m Model) View() string {
	if m.loading {
		return docStyle.Render(fmt.Sprintf("%s Loading...", m.spinner.View()))
	}

	header := titleStyle.Render("pitplan")
	body := ""

	switch m.currentView {
	case "menu":
		return docStyle.Render(m.mainMenu.View())

	case "cooks":
		body = m.cookTable.View() + "\n\nenter: plan • r: refresh • q: back"

	case "plan":
		if m.selected == nil {
			body = "No cook selected."
			break
		}
		summary := fmt.Sprintf("%s: %.1f lb %s, %s at %.0fF",
			m.selected.Name, m.selected.WeightLb, m.selected.MeatCut,
			m.selected.SmokerType, m.selected.SmokerTempF)
		if m.selected.Plan != nil {
			summary += fmt.Sprintf("\nPredicted finish %s (confidence %d/100)",
				m.selected.Plan.PredictedFinishTime.Local().Format("Mon 15:04"),
				m.selected.Plan.ConfidenceScore)
		}
		body = summary + "\n\n" + m.phaseTable.View() + "\n\np: live prediction • esc: back"

	case "prediction":
		if m.prediction == nil {
			body = "No prediction available."
			break
		}
		body = fmt.Sprintf("Status: %s\nUpdated finish: %s\nConfidence: %d/100\n\nesc: back",
			statusStyle.Render(m.prediction.Status),
			m.prediction.UpdatedFinishTime.Local().Format("Mon 15:04"),
			m.prediction.AdjustedConfidence)
	}

	if m.error != "" {
		body = errorStyle.Render("Error: "+m.error) + "\n\n" + body
	}

	return docStyle.Render(header + "\n\n" + body)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
