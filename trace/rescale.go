package trace

// Recalculate remeasures the scale-sensitive segments on the next frame and
// redraws them at the current frame, without moving the clock. Requests
// made while one is pending are dropped.
func (p *Player) Recalculate() {
	if p.rescaling {
		return
	}
	p.rescaling = true
	p.rescaleHandle = p.scheduler.RequestFrame(p.recalculate)
}

func (p *Player) recalculate() {
	p.rescaleHandle = 0
	changed := p.timeline.Remeasure()
	if p.prepared {
		for _, s := range changed {
			p.sink.Prepare(*s)
		}
	}
	Logger().Debug("trace: recalculated", "id", p.id, "changed", len(changed))
	p.trace()
	p.rescaling = false
}

func (p *Player) cancelRecalculate() {
	if !p.rescaling {
		return
	}
	p.scheduler.CancelFrame(p.rescaleHandle)
	p.rescaleHandle = 0
	p.rescaling = false
}
