package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/cadcopilot/internal/bridge"
	"github.com/zhubert/cadcopilot/internal/workflow"
)

// CopiedLabel replaces the copy button after a successful copy.
const CopiedLabel = "✓ Copied!"

// CopiedResetMsg reverts the copy button. Seq identifies which copy it
// belongs to so an older timer cannot cut a newer confirmation short.
type CopiedResetMsg struct{ Seq int }

// CodePanel shows a proposal for review: title, plan, code and notes.
type CodePanel struct {
	scrollPanel

	session   workflow.Session
	patch     *bridge.Patch
	showPatch bool

	copied    bool
	copiedSeq int
}

// NewCodePanel creates an empty code panel
func NewCodePanel() *CodePanel {
	return &CodePanel{scrollPanel: newScrollPanel()}
}

// SetSize sets the panel dimensions
func (p *CodePanel) SetSize(width, height int) {
	p.setSize(width, height)
	p.updateContent()
}

// SetFocused sets the focus state
func (p *CodePanel) SetFocused(focused bool) {
	p.focused = focused
}

// SetProposal replaces the displayed proposal. A new proposal scrolls to
// the top.
func (p *CodePanel) SetProposal(s workflow.Session, patch *bridge.Patch) {
	changed := s.Code != p.session.Code || s.Title != p.session.Title
	p.session = s
	p.patch = patch
	if patch == nil {
		p.showPatch = false
	}
	p.updateContent()
	if changed {
		p.viewport.GotoTop()
	}
}

// HasPatch reports whether a fix patch is available to toggle.
func (p *CodePanel) HasPatch() bool {
	return p.patch != nil && !p.patch.Empty()
}

// TogglePatch switches between the code and the fix patch.
func (p *CodePanel) TogglePatch() {
	if !p.HasPatch() {
		return
	}
	p.showPatch = !p.showPatch
	p.updateContent()
}

// ShowingPatch reports whether the patch view is active.
func (p *CodePanel) ShowingPatch() bool {
	return p.showPatch
}

// MarkCopied shows the copy confirmation and returns the command that
// reverts it after CopiedDuration.
func (p *CodePanel) MarkCopied() tea.Cmd {
	p.copied = true
	p.copiedSeq++
	seq := p.copiedSeq
	return tea.Tick(CopiedDuration, func(time.Time) tea.Msg {
		return CopiedResetMsg{Seq: seq}
	})
}

// HandleCopiedReset reverts the copy button if msg belongs to the latest copy.
func (p *CodePanel) HandleCopiedReset(msg CopiedResetMsg) {
	if msg.Seq == p.copiedSeq {
		p.copied = false
	}
}

// Copied reports whether the copy confirmation is showing.
func (p *CodePanel) Copied() bool {
	return p.copied
}

// Update handles scrolling
func (p *CodePanel) Update(msg tea.Msg) tea.Cmd {
	return p.scroll(msg)
}

// Actions returns the panel's action buttons.
func (p *CodePanel) Actions() []KeyBinding {
	copyLabel := "Copy"
	if p.copied {
		copyLabel = CopiedLabel
	}
	actions := []KeyBinding{
		{Key: "a", Desc: "Apply"},
		{Key: "r", Desc: "Reject"},
		{Key: "e", Desc: "Explain"},
		{Key: "c", Desc: copyLabel},
	}
	if p.HasPatch() {
		desc := "Diff"
		if p.showPatch {
			desc = "Code"
		}
		actions = append(actions, KeyBinding{Key: "d", Desc: desc})
	}
	return actions
}

func (p *CodePanel) updateContent() {
	p.viewport.SetContent(p.renderContent(p.contentWidth()))
}

func (p *CodePanel) renderContent(width int) string {
	s := p.session
	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Width(width).Render(s.Title))
	sb.WriteString("\n")

	if len(s.Plan) > 0 {
		sb.WriteString("\n")
		sb.WriteString(SectionLabelStyle.Render("Plan"))
		sb.WriteString("\n")
		for i, step := range s.Plan {
			sb.WriteString(ChatMessageStyle.Width(width).Render(fmt.Sprintf("%d. %s", i+1, step)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if p.showPatch && p.patch != nil {
		sb.WriteString(SectionLabelStyle.Render("Changes " + p.patch.Summary()))
		sb.WriteString("\n")
		sb.WriteString(RenderPatch(*p.patch))
	} else {
		sb.WriteString(SectionLabelStyle.Render("Code"))
		sb.WriteString("\n")
		sb.WriteString(highlightCode(s.Code, CodeLanguage))
		sb.WriteString("\n")
	}

	if s.Notes != "" {
		sb.WriteString("\n")
		sb.WriteString(SectionLabelStyle.Render("Notes"))
		sb.WriteString("\n")
		sb.WriteString(NotesStyle.Width(width).Render(s.Notes))
	}
	return sb.String()
}

// RenderPatch colors a patch line by line.
func RenderPatch(p bridge.Patch) string {
	var sb strings.Builder
	for _, l := range p.Lines {
		switch l.Op {
		case bridge.PatchAdded:
			sb.WriteString(DiffAddedStyle.Render(l.String()))
		case bridge.PatchRemoved:
			sb.WriteString(DiffRemovedStyle.Render(l.String()))
		default:
			sb.WriteString(DiffContextStyle.Render(l.String()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// View renders the panel
func (p *CodePanel) View() string {
	return p.render(renderActions(p.Actions()))
}
