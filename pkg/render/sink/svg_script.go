package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/heatgrid/pkg/heatmap"
	"github.com/matzehuels/heatgrid/pkg/status"
)

const interactionCSS = `
    .day-square { cursor: pointer; transform-box: fill-box; transform-origin: center; }
    .day-square[data-status="future"] { cursor: default; }
    #heatgrid-tooltip { pointer-events: none; font-family: sans-serif; font-size: 12px; }`

const tooltipElement = `  <g id="heatgrid-tooltip" visibility="hidden">
    <rect x="0" y="-15" width="160" height="21" rx="4" ry="4" fill="#fff" stroke="#ccc"/>
    <text x="8" y="0">Date:</text>
  </g>
`

const interactionJS = `
    const root = (document.currentScript && document.currentScript.closest('svg')) || document.querySelector('svg.heatgrid');
    const tip = root.querySelector('#heatgrid-tooltip');
    const tipText = tip.querySelector('text');
    const tipBox = tip.querySelector('rect');
    const cells = Array.from(root.querySelectorAll('.day-square'));

    function toSVG(evt) {
      const p = root.createSVGPoint();
      p.x = evt.clientX;
      p.y = evt.clientY;
      return p.matrixTransform(root.getScreenCTM().inverse());
    }
    function hideTooltip() {
      tip.setAttribute('visibility', 'hidden');
    }
    function showTooltip(cell, evt) {
      const p = toSVG(evt);
      const date = new Date(cell.dataset.date + 'T00:00:00');
      tipText.textContent = CFG.tooltip.prefix + date.toDateString();
      tip.setAttribute('transform', 'translate(' + (p.x + CFG.tooltip.dx) + ',' + (p.y + CFG.tooltip.dy) + ')');
      tipBox.setAttribute('width', tipText.getComputedTextLength() + 16);
      tip.setAttribute('visibility', 'visible');
    }
    function distance(a, b) {
      const dw = Math.floor(b / 7) - Math.floor(a / 7);
      const dd = (b % 7) - (a % 7);
      return Math.sqrt(dw * dw + dd * dd);
    }
    function paint(cell) {
      const rest = CFG.colors[cell.dataset.status];
      cell.setAttribute('fill', rest.hex);
      cell.setAttribute('fill-opacity', rest.alpha);
    }
    function ripple(origin) {
      const R = CFG.ripple;
      const peak = { transform: 'scale(' + R.scale + ')', fill: R.highlight, fillOpacity: 1 };
      cells.forEach((cell) => {
        const d = distance(origin, Number(cell.dataset.day));
        if (d > R.maxDistance) return;
        const up = cell.animate([{ transform: 'scale(1)' }, peak],
          { delay: d * (R.durationMs / R.maxDistance), duration: R.highlightMs, fill: 'forwards' });
        up.finished.then(() => {
          const rest = CFG.colors[cell.dataset.status];
          const down = cell.animate([peak, { transform: 'scale(1)', fill: rest.hex, fillOpacity: rest.alpha }],
            { duration: R.restoreMs, fill: 'forwards' });
          down.finished.then(() => {
            paint(cell);
            down.cancel();
            up.cancel();
          });
        });
      });
    }
    function complete(cell) {
      if (!CFG.endpoint) {
        cell.dataset.status = 'complete';
        return;
      }
      fetch(CFG.endpoint.replace('{day}', cell.dataset.day), { method: 'POST' })
        .then((res) => (res.ok ? res.json() : null))
        .then((body) => {
          if (!body || !body.status) return;
          cell.dataset.status = body.status;
          paint(cell);
        })
        .catch(() => {});
    }
    cells.forEach((cell) => {
      cell.addEventListener('click', () => {
        hideTooltip();
        if (cell.dataset.status === 'future') return;
        ripple(Number(cell.dataset.day));
        complete(cell);
      });
      cell.addEventListener('mouseenter', (evt) => showTooltip(cell, evt));
      cell.addEventListener('mousemove', (evt) => showTooltip(cell, evt));
      cell.addEventListener('mouseleave', hideTooltip);
    });`

type scriptColor struct {
	Hex   string  `json:"hex"`
	Alpha float64 `json:"alpha"`
}

type scriptConfig struct {
	Endpoint string                 `json:"endpoint,omitempty"`
	Colors   map[string]scriptColor `json:"colors"`
	Ripple   struct {
		DurationMs  float64 `json:"durationMs"`
		MaxDistance float64 `json:"maxDistance"`
		HighlightMs float64 `json:"highlightMs"`
		RestoreMs   float64 `json:"restoreMs"`
		Scale       float64 `json:"scale"`
		Highlight   string  `json:"highlight"`
	} `json:"ripple"`
	Tooltip struct {
		Prefix string  `json:"prefix"`
		DX     float64 `json:"dx"`
		DY     float64 `json:"dy"`
	} `json:"tooltip"`
}

func renderScript(buf *bytes.Buffer, h *heatmap.Heatmap, endpoint string) {
	p := h.Palette()
	rc := h.RippleConfig()

	cfg := scriptConfig{Endpoint: endpoint, Colors: map[string]scriptColor{}}
	for _, c := range []status.Class{status.Future, status.PastIncomplete, status.PastComplete} {
		fill := p.Fill(c)
		cfg.Colors[c.String()] = scriptColor{Hex: fill.Hex, Alpha: fill.Alpha}
	}
	cfg.Ripple.DurationMs = float64(rc.Duration) / float64(time.Millisecond)
	cfg.Ripple.MaxDistance = rc.MaxDistance
	cfg.Ripple.HighlightMs = float64(rc.Highlight) / float64(time.Millisecond)
	cfg.Ripple.RestoreMs = float64(rc.Restore) / float64(time.Millisecond)
	cfg.Ripple.Scale = rc.Scale
	cfg.Ripple.Highlight = rc.HighlightColor
	cfg.Tooltip.Prefix = heatmap.TooltipPrefix
	cfg.Tooltip.DX = heatmap.TooltipOffsetX
	cfg.Tooltip.DY = heatmap.TooltipOffsetY

	data, _ := json.Marshal(cfg) // plain strings and numbers only
	fmt.Fprintf(buf, "  <script><![CDATA[\n  (function () {\n    const CFG = %s;%s\n  })();\n  ]]></script>\n", data, interactionJS)
}
