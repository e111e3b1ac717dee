// Package tui implements the interactive database browser behind
// `hamclient browse`: a scrollable key/record list fed by a server-side
// cursor, with a per-row inspector.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/hamsterdb/hamkv/client"
	"github.com/hamsterdb/hamkv/wire"
)

type viewMode int

const (
	viewList viewMode = iota
	viewInspect
)

// loadBatch is how many rows one cursor walk fetches before handing
// control back to the event loop.
const loadBatch = 128

// row is one key/record pair copied out of the reply arenas. The copy is
// required: arena contents are only valid until the next call on the same
// database, and the browser keeps every fetched row alive.
type row struct {
	key    []byte
	record []byte
}

// Config tells the browser where to connect and which database to open.
type Config struct {
	URL    string
	Path   string
	Codec  wire.Codec
	DbName uint16
}

// Model is the Bubble Tea model for the hamkv browser.
type Model struct {
	cfg Config

	session *client.Session
	db      *client.Database
	cur     *client.Cursor

	rows    []row
	eof     bool
	loading bool
	cursor  int
	width   int
	height  int
	err     error
	view    viewMode

	inspectScroll int
}

// connectedMsg carries the session and opened database after a successful
// connect.
type connectedMsg struct {
	session *client.Session
	db      *client.Database
	cur     *client.Cursor
}

// rowsMsg carries one fetched batch of rows.
type rowsMsg struct {
	rows []row
	eof  bool
}

// errMsg carries a connect or cursor-walk failure.
type errMsg struct{ err error }

// New creates a browser Model for cfg.
func New(cfg Config) Model {
	return Model{cfg: cfg}
}

// Init starts the connect.
func (m Model) Init() tea.Cmd {
	return connect(m.cfg)
}

func connect(cfg Config) tea.Cmd {
	return func() tea.Msg {
		transport := client.NewHTTPTransport(cfg.URL, nil)
		session, err := client.Connect(cfg.Path, transport, cfg.Codec)
		if err != nil {
			return errMsg{err: fmt.Errorf("connect %s: %w", cfg.URL, err)}
		}
		db, err := session.OpenDb(cfg.DbName, 0, nil)
		if err != nil {
			_ = session.Disconnect()
			return errMsg{err: fmt.Errorf("open db %d: %w", cfg.DbName, err)}
		}
		cur, err := db.CreateCursor(nil, 0)
		if err != nil {
			_ = db.Close(0)
			_ = session.Disconnect()
			return errMsg{err: fmt.Errorf("create cursor: %w", err)}
		}
		return connectedMsg{session: session, db: db, cur: cur}
	}
}

// loadRows walks the cursor forward one batch. The first batch starts
// from the first key; later batches continue from the cursor's current
// position.
func loadRows(cur *client.Cursor, first bool) tea.Cmd {
	return func() tea.Msg {
		direction := wire.CursorNext
		if first {
			direction = wire.CursorFirst
		}

		var out []row
		for i := 0; i < loadBatch; i++ {
			var key client.Key
			var record client.Record
			err := cur.Move(&key, &record, direction)
			direction = wire.CursorNext
			if err != nil {
				var ee *client.EngineError
				if errors.As(err, &ee) && ee.Status == wire.StatusKeyNotFound {
					return rowsMsg{rows: out, eof: true}
				}
				return errMsg{err: err}
			}
			out = append(out, row{
				key:    append([]byte(nil), key.Data...),
				record: append([]byte(nil), record.Data...),
			})
		}
		return rowsMsg{rows: out, eof: false}
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectedMsg:
		m.session = msg.session
		m.db = msg.db
		m.cur = msg.cur
		m.loading = true
		return m, loadRows(m.cur, true)

	case rowsMsg:
		m.rows = append(m.rows, msg.rows...)
		m.eof = msg.eof
		m.loading = false
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewInspect:
			return m.updateInspect(msg)
		case viewList:
			return m.updateList(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "enter":
		if len(m.rows) > 0 {
			m.view = viewInspect
			m.inspectScroll = 0
		}
		return m, nil
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m.maybeLoadMore()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "g":
		m.cursor = 0
		return m, nil
	case "G":
		m.cursor = max(len(m.rows)-1, 0)
		return m.maybeLoadMore()
	case "ctrl+d", "pgdown":
		half := max(m.listHeight()/2, 1)
		m.cursor = min(m.cursor+half, max(len(m.rows)-1, 0))
		return m.maybeLoadMore()
	case "ctrl+u", "pgup":
		half := max(m.listHeight()/2, 1)
		m.cursor = max(m.cursor-half, 0)
		return m, nil
	}
	return m, nil
}

// maybeLoadMore fetches the next batch when the selection is near the end
// of what's loaded and the cursor hasn't hit the last key yet.
func (m Model) maybeLoadMore() (tea.Model, tea.Cmd) {
	if m.eof || m.loading || m.cur == nil {
		return m, nil
	}
	if m.cursor < len(m.rows)-loadBatch/4 {
		return m, nil
	}
	m.loading = true
	return m, loadRows(m.cur, false)
}

func (m Model) updateInspect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.view = viewList
		return m, nil
	case "ctrl+c":
		return m.quit()
	case "j", "down":
		lines := m.inspectLines()
		maxScroll := max(len(lines)-m.inspectVisibleRows(), 0)
		if m.inspectScroll < maxScroll {
			m.inspectScroll++
		}
		return m, nil
	case "k", "up":
		if m.inspectScroll > 0 {
			m.inspectScroll--
		}
		return m, nil
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cur != nil {
		_ = m.cur.Close()
	}
	if m.db != nil {
		_ = m.db.Close(0)
	}
	if m.session != nil {
		_ = m.session.Disconnect()
	}
	return m, tea.Quit
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.err != nil {
		return friendlyError(m.err, m.width)
	}
	if m.session == nil {
		return "Connecting to " + m.cfg.URL + "..."
	}
	if m.view == viewInspect {
		return m.renderInspector()
	}
	return m.renderListView()
}
