package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/session"
)

const (
	AppName         = "REALM FORGE"
	PlaceHolderText = "Type a command, or /help..."

	mapRows = 12
)

var titleCaser = cases.Title(language.English)

// ConsoleUI is the BubbleTea model that runs the adventure board.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config            *ConsoleConfig
	client            *http.Client
	sess              *session.Session
	chronicleViewport viewport.Model
	metaViewport      viewport.Model
	textarea          textarea.Model
	ready             bool
	width             int
	height            int
	err               error
	busy              bool
	status            string

	// Quit confirmation state
	showQuitModal bool
}

type savedMsg struct {
	err error
}

type spawnTemplateMsg struct {
	tmpl *actor.Template
	disp actor.Disposition
	err  error
}

type bestiaryMsg struct {
	names []string
	err   error
}

type locationMsg struct {
	token uint64
	loc   *GeneratedLocation
	err   error
}

type effectTickMsg struct{}

var (
	boardPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(1).
			PaddingLeft(2).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	heroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	allyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	enemyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true)

	deadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	currentTurnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	chronicleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	rollStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	mapStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func dispositionStyle(d actor.Disposition) lipgloss.Style {
	switch d {
	case actor.DispositionHero:
		return heroStyle
	case actor.DispositionAlly:
		return allyStyle
	case actor.DispositionNPC:
		return npcStyle
	default:
		return enemyStyle
	}
}

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, save *session.Save) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	chronVp := viewport.New(50, 10)
	chronVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:            cfg,
		client:            client,
		sess:              session.Restore(save, nil),
		textarea:          ta,
		chronicleViewport: chronVp,
		metaViewport:      metaVp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		cvCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chronicleViewport, cvCmd = m.chronicleViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(cvCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.ready = true
		m.refreshPanels()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m.handleCommand(input)
		}

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = ""
		}
		m.refreshPanels()

	case spawnTemplateMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.refreshPanels()
			return m, nil
		}
		if _, err := m.sess.Spawn(msg.tmpl, msg.disp); err != nil {
			m.status = err.Error()
			m.refreshPanels()
			return m, nil
		}
		m.status = ""
		m.refreshPanels()
		return m, m.saveAdventure()

	case bestiaryMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "bestiary: " + strings.Join(msg.names, ", ")
		}
		m.refreshPanels()

	case locationMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.refreshPanels()
			return m, nil
		}
		loc := session.Location{
			Name:             msg.loc.Name,
			MapURL:           msg.loc.MapURL,
			EnvironmentState: msg.loc.EnvironmentState,
		}
		if !m.sess.ApplyLocation(msg.token, loc) {
			// A newer travel request superseded this one.
			return m, nil
		}
		m.sess.Log("[SYSTEM] The party arrives at %s.", loc.Name)
		m.status = ""
		m.refreshPanels()
		return m, m.saveAdventure()

	case effectTickMsg:
		m.refreshPanels()
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chronicleViewport, cvCmd = m.chronicleViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(tiCmd, cvCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	boardWidth := int(float64(m.width)*0.62) - 4
	metaWidth := m.width - boardWidth - 6

	m.chronicleViewport.Width = boardWidth - 2
	m.chronicleViewport.Height = m.height - mapRows - 10
	if m.chronicleViewport.Height < 3 {
		m.chronicleViewport.Height = 3
	}
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 3
	m.textarea.SetWidth(boardWidth - 4)
}

func (m *ConsoleUI) refreshPanels() {
	m.metaViewport.SetContent(m.writeMetadata())
	m.writeChronicle()
}

// writeChronicle renders the adventure log oldest first, so the latest
// entry sits at the bottom of the viewport.
func (m *ConsoleUI) writeChronicle() {
	width := m.chronicleViewport.Width - 2
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	chron := m.sess.Chronicle
	for i := len(chron) - 1; i >= 0; i-- {
		entry := wordwrap.String(chron[i], width)
		content.WriteString(styleChronicleEntry(entry) + "\n")
	}
	if m.busy {
		content.WriteString(statusStyle.Render("...") + "\n")
	}
	m.chronicleViewport.SetContent(content.String())
	m.chronicleViewport.GotoBottom()
}

func styleChronicleEntry(entry string) string {
	switch {
	case strings.HasPrefix(entry, "[COMBAT]"), strings.HasPrefix(entry, "[TURN]"):
		return npcStyle.Render(entry)
	case strings.HasPrefix(entry, "[ROLL]"):
		return rollStyle.Render(entry)
	case strings.HasPrefix(entry, "[SYSTEM]"), strings.HasPrefix(entry, "[SUMMON]"):
		return systemStyle.Render(entry)
	default:
		return chronicleStyle.Render(entry)
	}
}

func (m *ConsoleUI) writeMetadata() string {
	s := m.sess
	var content strings.Builder
	content.WriteString(titleStyle.Render(AppName) + "\n\n")

	content.WriteString("Adventure:\n")
	content.WriteString(s.ID.String()[:8] + "...\n\n")

	if s.CurrentLocation != nil {
		content.WriteString("Location:\n")
		content.WriteString(titleCaser.String(s.CurrentLocation.Name) + "\n")
		if s.CurrentLocation.EnvironmentState != "" {
			content.WriteString(systemStyle.Render(
				wordwrap.String(s.CurrentLocation.EnvironmentState, m.metaViewport.Width-2)) + "\n")
		}
		content.WriteString("\n")
	}

	if len(s.LocationHistory) > 1 {
		content.WriteString("Known Places:\n")
		for _, loc := range s.LocationHistory {
			marker := "  "
			if s.CurrentLocation != nil && loc.Name == s.CurrentLocation.Name {
				marker = "▸ "
			}
			content.WriteString(marker + titleCaser.String(loc.Name) + "\n")
		}
		content.WriteString("\n")
	}

	order := s.TurnOrder()
	if s.Round > 0 {
		content.WriteString(fmt.Sprintf("Round %d\n", s.Round))
	}
	if len(order) > 0 {
		content.WriteString("Battle Order:\n")
		current := s.CurrentActor()
		for _, c := range order {
			line := fmt.Sprintf("%2d %s %d/%d", *c.Initiative, c.Name, c.HP, c.MaxHP)
			if current != nil && c.ID == current.ID {
				content.WriteString(currentTurnStyle.Render("▶ "+line) + "\n")
			} else {
				content.WriteString(dispositionStyle(c.Disposition).Render("  "+line) + "\n")
			}
		}
		content.WriteString("\n")
	}

	content.WriteString("Roster:\n")
	for _, c := range s.Combatants {
		st := dispositionStyle(c.Disposition)
		if c.IsDefeated() {
			st = deadStyle
		}
		content.WriteString(st.Render(fmt.Sprintf("%s  HP %d/%d  AC %d", c.Name, c.HP, c.MaxHP, c.AC)))
		for _, e := range s.Effects() {
			if e.CombatantID == c.ID {
				if e.Delta < 0 {
					content.WriteString(errorStyle.Render(fmt.Sprintf(" %d", e.Delta)))
				} else {
					content.WriteString(heroStyle.Render(fmt.Sprintf(" +%d", e.Delta)))
				}
			}
		}
		content.WriteString("\n")
		if c.Gold > 0 || len(c.Inventory) > 0 {
			content.WriteString(systemStyle.Render(
				fmt.Sprintf("  %dgp  %s", c.Gold, strings.Join(c.Inventory, ", "))) + "\n")
		}
	}

	if m.status != "" {
		content.WriteString("\n" + statusStyle.Render(wordwrap.String(m.status, m.metaViewport.Width-2)) + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• /start /next\n")
	content.WriteString("• /hp <name> <±n>\n")
	content.WriteString("• /spawn <beast>\n")
	content.WriteString("• /loot <name>\n")
	content.WriteString("• /travel <prompt>\n")
	content.WriteString("• /help for all\n")

	return content.String()
}

// renderMap draws the battle map as a bordered grid. Combatant positions
// are percentages of the map, the same coordinate space the grid snap
// works in.
func (m ConsoleUI) renderMap(width int) string {
	cols := width - 2
	if cols < 20 {
		cols = 20
	}

	grid := make([][]string, mapRows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			if r%3 == 1 && c%6 == 2 {
				grid[r][c] = separatorStyle.Render("·")
			} else {
				grid[r][c] = " "
			}
		}
	}

	current := m.sess.CurrentActor()
	for _, c := range m.sess.Combatants {
		col := int(c.X / 100 * float64(cols-1))
		row := int(c.Y / 100 * float64(mapRows-1))
		if col < 0 {
			col = 0
		} else if col >= cols {
			col = cols - 1
		}
		if row < 0 {
			row = 0
		} else if row >= mapRows {
			row = mapRows - 1
		}

		token := strings.ToUpper(c.Name[:1])
		switch {
		case c.IsDefeated():
			grid[row][col] = deadStyle.Render("†")
		case current != nil && c.ID == current.ID:
			grid[row][col] = currentTurnStyle.Render(token)
		default:
			grid[row][col] = dispositionStyle(c.Disposition).Render(token)
		}
	}

	rows := make([]string, mapRows)
	for r := range grid {
		rows[r] = strings.Join(grid[r], "")
	}
	return mapStyle.Render(strings.Join(rows, "\n"))
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	if !strings.HasPrefix(input, "/") {
		// Plain text becomes a journal entry.
		m.sess.Log("%s", input)
		m.refreshPanels()
		return m, m.saveAdventure()
	}

	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		m.status = "commands: /start /next /roll dN /hp <name> <±n> /spawn <beast> [ally|npc|enemy] " +
			"/bestiary /loot <name> /toggle <name> /move <name> <x> <y> /travel <prompt> /go <place> /copy /save"
		m.refreshPanels()
		return m, nil

	case "/start":
		if err := m.sess.StartCombat(); err != nil {
			m.status = err.Error()
		}
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/next":
		if err := m.sess.AdvanceTurn(); err != nil {
			m.status = err.Error()
		}
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/roll":
		sides := 20
		if len(args) > 0 {
			n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(args[0]), "d"))
			if err != nil || n < 2 {
				m.status = "usage: /roll d20"
				m.refreshPanels()
				return m, nil
			}
			sides = n
		}
		if _, err := m.sess.RollDie(sides); err != nil {
			m.status = err.Error()
		}
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/hp":
		if len(args) < 2 {
			m.status = "usage: /hp <name> <±n>"
			m.refreshPanels()
			return m, nil
		}
		delta, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			m.status = "usage: /hp <name> <±n>"
			m.refreshPanels()
			return m, nil
		}
		c := m.findCombatant(strings.Join(args[:len(args)-1], " "))
		if c == nil {
			m.status = "no such combatant"
			m.refreshPanels()
			return m, nil
		}
		m.sess.AdjustHP(c.ID, delta)
		m.refreshPanels()
		return m, tea.Batch(m.saveAdventure(), effectTick())

	case "/spawn":
		if len(args) < 1 {
			m.status = "usage: /spawn <beast> [ally|npc|enemy]"
			m.refreshPanels()
			return m, nil
		}
		disp := actor.DispositionEnemy
		if len(args) > 1 {
			disp = actor.Disposition(strings.ToUpper(args[1]))
		}
		m.busy = true
		m.refreshPanels()
		return m, m.fetchTemplate(args[0], disp)

	case "/bestiary":
		m.busy = true
		m.refreshPanels()
		return m, m.fetchBestiary()

	case "/loot":
		if len(args) < 1 {
			m.status = "usage: /loot <name>"
			m.refreshPanels()
			return m, nil
		}
		c := m.findCombatant(strings.Join(args, " "))
		if c == nil {
			m.status = "no such combatant"
			m.refreshPanels()
			return m, nil
		}
		m.sess.LootAll(c.ID)
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/toggle":
		if len(args) < 1 {
			m.status = "usage: /toggle <name>"
			m.refreshPanels()
			return m, nil
		}
		c := m.findCombatant(strings.Join(args, " "))
		if c == nil {
			m.status = "no such combatant"
			m.refreshPanels()
			return m, nil
		}
		m.sess.ToggleDisposition(c.ID)
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/move":
		if len(args) < 3 {
			m.status = "usage: /move <name> <x> <y>"
			m.refreshPanels()
			return m, nil
		}
		x, errX := strconv.ParseFloat(args[len(args)-2], 64)
		y, errY := strconv.ParseFloat(args[len(args)-1], 64)
		if errX != nil || errY != nil {
			m.status = "usage: /move <name> <x> <y> (percent coordinates)"
			m.refreshPanels()
			return m, nil
		}
		c := m.findCombatant(strings.Join(args[:len(args)-2], " "))
		if c == nil {
			m.status = "no such combatant"
			m.refreshPanels()
			return m, nil
		}
		m.sess.MoveToken(c.ID, x, y)
		m.sess.ReleaseToken(c.ID)
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/travel":
		if len(args) < 1 {
			m.status = "usage: /travel <prompt>"
			m.refreshPanels()
			return m, nil
		}
		prompt := strings.Join(args, " ")
		token := m.sess.BeginLocationRequest()
		m.busy = true
		m.refreshPanels()
		return m, m.fetchLocation(token, prompt)

	case "/go":
		if len(args) < 1 {
			m.status = "usage: /go <place>"
			m.refreshPanels()
			return m, nil
		}
		name := strings.Join(args, " ")
		if !m.sess.SetCurrent(name) {
			m.status = "unknown place; /travel there first"
			m.refreshPanels()
			return m, nil
		}
		m.refreshPanels()
		return m, m.saveAdventure()

	case "/copy":
		if err := clipboard.WriteAll(m.sess.ID.String()); err != nil {
			m.status = "clipboard unavailable: " + err.Error()
		} else {
			m.status = "adventure ID copied"
		}
		m.refreshPanels()
		return m, nil

	case "/save":
		m.status = "saving..."
		m.refreshPanels()
		return m, m.saveAdventure()

	default:
		m.status = "unknown command; /help lists them"
		m.refreshPanels()
		return m, nil
	}
}

// findCombatant matches by name, case-insensitive, exact before prefix.
func (m ConsoleUI) findCombatant(name string) *actor.Combatant {
	lower := strings.ToLower(name)
	for _, c := range m.sess.Combatants {
		if strings.ToLower(c.Name) == lower {
			return c
		}
	}
	for _, c := range m.sess.Combatants {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			return c
		}
	}
	return nil
}

func (m ConsoleUI) saveAdventure() tea.Cmd {
	save := m.sess.Snapshot()
	return func() tea.Msg {
		return savedMsg{putAdventure(m.client, m.config.APIBaseURL, save)}
	}
}

func (m ConsoleUI) fetchTemplate(name string, disp actor.Disposition) tea.Cmd {
	return func() tea.Msg {
		tmpl, err := getTemplate(m.client, m.config.APIBaseURL, name)
		return spawnTemplateMsg{tmpl, disp, err}
	}
}

func (m ConsoleUI) fetchBestiary() tea.Cmd {
	return func() tea.Msg {
		names, err := listTemplates(m.client, m.config.APIBaseURL)
		return bestiaryMsg{names, err}
	}
}

func (m ConsoleUI) fetchLocation(token uint64, prompt string) tea.Cmd {
	return func() tea.Msg {
		loc, err := generateLocation(m.client, m.config.APIBaseURL, prompt)
		return locationMsg{token, loc, err}
	}
}

// effectTick schedules a redraw after the damage effect window closes.
func effectTick() tea.Cmd {
	return tea.Tick(session.EffectTTL+100*time.Millisecond, func(time.Time) tea.Msg {
		return effectTickMsg{}
	})
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Adventure?"))
	content.WriteString("\n\n")
	content.WriteString("Progress is saved after every command.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	boardWidth := int(float64(m.width)*0.62) - 4
	metaWidth := m.width - boardWidth - 6

	headline := titleStyle.Render(AppName)
	if m.sess.CurrentLocation != nil {
		headline += separatorStyle.Render("  ─  ") + titleCaser.String(m.sess.CurrentLocation.Name)
	}

	boardPanel := boardPanelStyle.Width(boardWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headline,
			m.renderMap(boardWidth-2),
			m.chronicleViewport.View(),
			separatorStyle.Render(strings.Repeat("─", boardWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, boardPanel, metaPanel)
}
