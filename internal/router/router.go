// Package router keeps the stack of screens the app navigates through.
// Screens never touch the stack directly; they return one of the *Msg
// commands below and the router applies it on the next update.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skilldash/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// PopToRootMsg closes every screen above the root.
type PopToRootMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen without growing the
// stack, e.g. a finished wizard turning into its result page.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a navigation stack. The bottom screen is the root and is never
// removed.
type Router struct {
	screens []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{screens: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	return s.Init()
}

// Pop closes the top screen and tells the revealed one to refresh itself.
// It does nothing at the root.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.screens) - 1)
}

// PopToRoot closes everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

func (r *Router) truncate(depth int) tea.Cmd {
	if depth < 1 || depth >= len(r.screens) {
		return nil
	}
	clear(r.screens[depth:])
	r.screens = r.screens[:depth]
	return resume
}

func resume() tea.Msg { return screen.ResumeMsg{} }

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.screens) == 0 {
		return r.Push(s)
	}
	r.screens[len(r.screens)-1] = s
	return s.Init()
}

// Active returns the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if n := len(r.screens); n > 0 {
		return r.screens[n-1]
	}
	return nil
}

func (r *Router) Depth() int {
	return len(r.screens)
}

// Breadcrumb joins the titles of every open screen, root first.
func (r *Router) Breadcrumb(sep string) string {
	titles := make([]string, 0, len(r.screens))
	for _, s := range r.screens {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, sep)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.screens[len(r.screens)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
