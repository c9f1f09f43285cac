// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package garto

import "math"

// marginalVolume returns the water volume gained by raising the
// moisture of bin b of compartment s by one unit. Bin b occupies the
// depth range between its own front and the front of its right
// neighbour (the full soil depth down to the first front for the
// filled bin), so the marginal volume is the difference of the two
// front depths
func (o *Model) marginalVolume(s, b int) float64 {
	var z float64
	if b == 0 {
		z = o.Comps[s].Depth
	} else {
		z = o.FrontDepth[s][b]
	}
	if b+1 < o.NmbBins && o.FrontDepth[s][b+1] > 0 {
		z -= o.FrontDepth[s][b+1]
	}
	return z
}

// WaterAllBins adds the given water volume to compartment s, filling
// the driest active front first. Each front takes water only up to the
// moisture of its right neighbour (or saturation), keeping the arena
// ordered; whatever remains afterwards goes into the bulk storage.
// Water not placeable anywhere is dropped, so callers must treat the
// realised addition, not the offer, as the flux
func (o *Model) WaterAllBins(s int, amount float64) {
	if amount <= 0 {
		return
	}
	c := &o.Comps[s]
	last := o.lastActive(s)
	added := 0.0
	for b := 1; b <= last && amount > 0; b++ {
		if o.FrontDepth[s][b] == 0 {
			continue
		}
		vol := o.marginalVolume(s, b)
		if vol <= 0 {
			continue
		}
		lim := c.Soil.Ths
		if b < last && o.Moisture[s][b+1] < lim {
			lim = o.Moisture[s][b+1]
		}
		room := (lim - o.Moisture[s][b]) * vol
		if room <= 0 {
			continue
		}
		x := math.Min(room, amount)
		dth := x / vol
		o.Moisture[s][b] += dth
		o.MoistureChange[s][b] = dth
		amount -= x
		added += x
	}
	if amount > 0 {
		lim := c.Soil.Ths
		if last >= 1 && o.Moisture[s][1] < lim {
			lim = o.Moisture[s][1]
		}
		if vol := o.marginalVolume(s, 0); vol > 0 {
			if room := (lim - o.Moisture[s][0]) * vol; room > 0 {
				x := math.Min(room, amount)
				o.Moisture[s][0] += x / vol
				added += x
			}
		}
	}
	o.SoilWaterAddition[s] += added
	o.collapseEqualBins(s)
}

// WithdrawAllBins removes the given water volume from compartment s,
// draining the wettest active front first. Each front releases water
// only down to the moisture of its left neighbour; the bulk storage
// releases down to the residual moisture. The realised withdrawal is
// booked as flux; an unsatisfiable rest is dropped
func (o *Model) WithdrawAllBins(s int, amount float64) {
	if amount <= 0 {
		return
	}
	c := &o.Comps[s]
	taken := 0.0
	for b := o.lastActive(s); b >= 1 && amount > 0; b-- {
		if o.FrontDepth[s][b] == 0 {
			continue
		}
		vol := o.marginalVolume(s, b)
		if vol <= 0 {
			continue
		}
		avail := (o.Moisture[s][b] - o.Moisture[s][b-1]) * vol
		if avail <= 0 {
			continue
		}
		x := math.Min(avail, amount)
		dth := x / vol
		o.Moisture[s][b] -= dth
		o.MoistureChange[s][b] = -dth
		amount -= x
		taken += x
	}
	if amount > 0 {
		if vol := o.marginalVolume(s, 0); vol > 0 {
			if avail := (o.Moisture[s][0] - c.Soil.Thr) * vol; avail > 0 {
				x := math.Min(avail, amount)
				o.Moisture[s][0] -= x / vol
				taken += x
			}
		}
	}
	o.Withdrawal[s] += taken
	o.collapseEqualBins(s)
}
