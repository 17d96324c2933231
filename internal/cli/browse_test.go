package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/packforge/packforge/pkg/registry/crates"
)

func testResults() []crates.SearchResult {
	return []crates.SearchResult{
		{Name: "cli-pack", MaxVersion: "0.2.1", Description: "Command-line essentials"},
		{Name: "error-pack", MaxVersion: "0.1.0", Description: "Error handling"},
		{Name: "web-pack", MaxVersion: "1.0.0", Description: "Web server stack"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseListNavigation(t *testing.T) {
	m := newBrowseModel(context.Background(), nil, testResults(), false)

	next, _ := m.Update(keyMsg("j"))
	m = next.(browseModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(browseModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}

	// Cursor stops at the edges.
	next, _ = m.Update(keyMsg("k"))
	m = next.(browseModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d at top, want 0", m.cursor)
	}
}

func TestBrowseListScrollsOffset(t *testing.T) {
	m := newBrowseModel(context.Background(), nil, testResults(), false)
	m.height = 2

	for i := 0; i < 2; i++ {
		next, _ := m.Update(keyMsg("j"))
		m = next.(browseModel)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
}

func TestBrowseDetailAddSetsPendingAction(t *testing.T) {
	m := newBrowseModel(context.Background(), nil, testResults(), false)
	m.screen = screenDetail
	m.detail = &packDetail{Name: "cli-pack", Version: "0.2.1"}

	next, cmd := m.Update(keyMsg("a"))
	m = next.(browseModel)

	if m.pending == nil || m.pending.kind != "add" || m.pending.pack != "cli-pack" {
		t.Fatalf("pending = %+v, want add cli-pack", m.pending)
	}
	if cmd == nil {
		t.Error("selecting add should quit the program")
	}
}

func TestBrowseFormSubmitSetsPendingAction(t *testing.T) {
	m := newBrowseModel(context.Background(), nil, testResults(), false)
	m.screen = screenDetail
	m.detail = &packDetail{Name: "cli-pack", Version: "0.2.1"}

	next, _ := m.Update(keyMsg("n"))
	m = next.(browseModel)
	if m.screen != screenForm {
		t.Fatalf("screen = %d after n, want form", m.screen)
	}

	// Empty name is rejected.
	next, _ = m.Update(keyMsg("enter"))
	m = next.(browseModel)
	if m.pending != nil {
		t.Fatal("empty project name should not submit")
	}

	m.nameInput.SetValue("my-tool")
	next, _ = m.Update(keyMsg("enter"))
	m = next.(browseModel)

	if m.pending == nil || m.pending.kind != "new" || m.pending.project != "my-tool" {
		t.Fatalf("pending = %+v, want new my-tool", m.pending)
	}
}

func TestBrowseDetailEscReturnsToList(t *testing.T) {
	m := newBrowseModel(context.Background(), nil, testResults(), false)
	m.screen = screenDetail
	m.detail = &packDetail{Name: "cli-pack"}

	next, _ := m.Update(keyMsg("esc"))
	m = next.(browseModel)
	if m.screen != screenList {
		t.Errorf("screen = %d after esc, want list", m.screen)
	}
	if m.detail != nil {
		t.Error("detail should be cleared when leaving the detail screen")
	}
}
