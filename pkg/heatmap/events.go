package heatmap

import (
	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/ripple"
	"github.com/matzehuels/heatgrid/pkg/status"
)

// Click handles a click on day. It hides the tooltip, ignores future days
// (nil ripple, nil error), schedules the ripple and invokes the completion
// callback. The ripple is settled after the callback returns, so final colors
// reflect the click only if the callback called SetCompleted (see [New]).
func (h *Heatmap) Click(day int) (*ripple.Ripple, error) {
	date, err := calendar.DateOf(h.layout.Year, day)
	if err != nil {
		return nil, err
	}
	h.HoverLeave()

	if class, _ := h.classifier.Classify(date); class == status.Future {
		return nil, nil
	}

	r := ripple.Schedule(day, h.days(), h.ripple)
	if h.onComplete != nil {
		h.onComplete(date)
	}
	r.Settle(h.restingCSS)
	return r, nil
}

// HoverEnter shows the tooltip for day near the pointer.
func (h *Heatmap) HoverEnter(day int, x, y float64) error {
	return h.showTooltip(day, x, y)
}

// HoverMove moves the tooltip with the pointer.
func (h *Heatmap) HoverMove(day int, x, y float64) error {
	return h.showTooltip(day, x, y)
}

// HoverLeave hides the tooltip.
func (h *Heatmap) HoverLeave() {
	h.tooltip.Show("", 0, 0, false)
}

// TooltipText returns the hover text for day.
func (h *Heatmap) TooltipText(day int) (string, error) {
	date, err := calendar.DateOf(h.layout.Year, day)
	if err != nil {
		return "", err
	}
	return TooltipPrefix + date.Format(calendar.TooltipLayout), nil
}

func (h *Heatmap) showTooltip(day int, x, y float64) error {
	text, err := h.TooltipText(day)
	if err != nil {
		return err
	}
	h.tooltip.Show(text, x+TooltipOffsetX, y+TooltipOffsetY, true)
	return nil
}

func (h *Heatmap) restingCSS(day int) string {
	c, err := h.RestingColor(day)
	if err != nil {
		return ""
	}
	return c.CSS()
}

func (h *Heatmap) days() []int {
	days := make([]int, h.layout.Days())
	for i := range days {
		days[i] = i
	}
	return days
}
