// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package garto

import "math"

// PercolateFilledBin releases deep percolation from the filled bin of
// compartment s. The filled bin always spans the whole column; when its
// moisture reaches saturation, water leaves at the saturated
// conductivity, taken first from the actual surface water and then from
// the bulk storage
func (o *Model) PercolateFilledBin(s int) {
	c := &o.Comps[s]
	o.FrontDepth[s][0] = c.Depth
	if !o.saturated(s, o.Moisture[s][0]) {
		return
	}
	perc := c.Soil.Ks * o.DT
	fromSurface := math.Min(o.asw, perc)
	o.asw -= fromSurface
	rest := perc - fromSurface
	if rest > 0 {
		vol := o.marginalVolume(s, 0)
		if vol <= 0 {
			rest = 0
		} else {
			if avail := (o.Moisture[s][0] - c.Soil.Thr) * vol; rest > avail {
				rest = avail
			}
			o.Moisture[s][0] -= rest / vol
		}
	}
	o.Percolation[s] += fromSurface + rest
}

// InfiltrateWettingFrontBins routes the actual surface water of
// compartment s through the active wetting-front bins. Each bin either
// advances as a sharp front, redistributes its moisture, or spawns a
// new front, depending on its saturation, its position in the arena and
// the current rainfall intensity
func (o *Model) InfiltrateWettingFrontBins(s int) {
	c := &o.Comps[s]
	if o.lastActive(s) == 0 {
		if o.asw > 0 && !o.saturated(s, o.Moisture[s][0]) {
			o.ActiveBin(s, 0)
		}
		return
	}
	b := 1
	for b <= o.lastActive(s) {
		removed := false
		intense := o.asw/o.DT > c.Soil.Ks
		switch {
		case o.saturated(s, o.Moisture[s][b]):
			if intense {
				o.ShiftFront(s, b)
			} else {
				removed = o.RedistributeFront(s, b)
			}
		case b == o.NmbBins-1:
			// no free slot remains; new fronts cannot emerge here
			removed = o.RedistributeFront(s, b)
		case b == o.lastActive(s):
			if o.MoistureChange[s][b] < 0 && intense {
				o.ActiveBin(s, b)
				return
			}
			removed = o.RedistributeFront(s, b)
		case o.Moisture[s][b+1] > o.Moisture[s][b]:
			o.ShiftFront(s, b)
		default:
			removed = o.RedistributeFront(s, b)
		}
		if removed {
			// the right neighbour slid into slot b; process it next
			continue
		}
		b++
	}
}

// ActiveBin spawns a new wetting front right of bin b, fed by the
// actual surface water. The new moisture level follows from spreading
// the surface water over the Green-Ampt dry depth of the underlying
// moisture; the front depth follows from the water actually taken in
func (o *Model) ActiveBin(s, b int) {
	c := &o.Comps[s]
	th := o.Moisture[s][b]
	zd := c.Soil.DryDepth(th, o.DT)
	if zd <= 0 {
		return
	}
	dth := (o.asw - c.Soil.Kth(th)*o.DT) / zd
	if dth == 0 {
		return
	}
	if dth < 0 {
		dth = c.Soil.Ths - th
	}
	if th+dth > c.Soil.Ths {
		dth = c.Soil.Ths - th
	}
	if dth <= θtol {
		return
	}
	w := math.Min(o.asw, dth*zd)
	if w <= 0 {
		return
	}
	o.asw -= w
	o.Moisture[s][b+1] = th + dth
	o.FrontDepth[s][b+1] = w / dth
	o.MoistureChange[s][b+1] = dth
}

// ShiftFront advances the sharp front of bin b at the Green-Ampt rate.
// The water demanded by the advance comes from the actual surface water
// first; any deficit is borrowed from the wetter bins to the right,
// reducing their front depths. The advance never pushes the front below
// the soil bottom
func (o *Model) ShiftFront(s, b int) {
	c := &o.Comps[s]
	th, thl := o.Moisture[s][b], o.Moisture[s][b-1]
	dth := th - thl
	if dth <= θtol {
		return
	}
	z := o.FrontDepth[s][b]
	var adv float64
	if z < ztol {
		adv = c.Soil.DryDepth(thl, o.DT)
	} else {
		g := c.Soil.CapillaryDrive(thl, th)
		adv = o.DT * (c.Soil.Kth(th) - c.Soil.Kth(thl)) / dth * (1.0 + g/z)
	}
	if z+adv > c.Depth {
		adv = c.Depth - z
	}
	if adv <= 0 {
		return
	}
	need := adv * dth
	got := math.Min(need, o.asw)
	o.asw -= got
	if deficit := need - got; deficit > 0 {
		for j := o.lastActive(s); j > b && deficit > 0; j-- {
			den := o.Moisture[s][j] - o.Moisture[s][j-1]
			if den <= θtol || o.FrontDepth[s][j] <= 0 {
				continue
			}
			x := math.Min(o.FrontDepth[s][j]*den, deficit)
			o.FrontDepth[s][j] -= x / den
			deficit -= x
			got += x
			if o.FrontDepth[s][j] <= ztol {
				o.FrontDepth[s][j] = 0
				o.Moisture[s][j] = c.Soil.Thr
				o.MoistureChange[s][j] = 0
			}
		}
	}
	o.FrontDepth[s][b] = z + got/dth
	o.MoistureChange[s][b] = 0
}

// RedistributeFront relaxes the moisture of bin b following the
// redistribution equation of Ogden and Saghafian: conductivity contrast
// and capillary drive flatten the front while (for the topmost bin)
// rainfall feeds it. The front depth is recomputed from the conserved
// bin water plus the infiltrated share of the surface water. The
// returned flag tells whether the bin dissipated and left the arena
func (o *Model) RedistributeFront(s, b int) (removed bool) {
	c := &o.Comps[s]
	th, thl := o.Moisture[s][b], o.Moisture[s][b-1]
	dthl := th - thl
	if dthl <= θtol {
		o.deactivateBin(s, b)
		return true
	}
	z := o.FrontDepth[s][b]
	if z < ztol {
		z = c.Soil.DryDepth(thl, o.DT)
		if z <= 0 {
			o.deactivateBin(s, b)
			return true
		}
	}
	top := b == o.lastActive(s)
	q := 0.0
	if top {
		q = o.asw / o.DT
	}
	g := c.Soil.CapillaryDrive(thl, th)
	dk := c.Soil.Kth(th) - c.Soil.Kth(thl)
	thNew := th + o.DT*(q-dk*(1.0+g/z))/z
	if thNew > c.Soil.Ths {
		thNew = c.Soil.Ths
	}
	if thNew <= thl+θtol {
		// the front dissipated into its left neighbour
		o.deactivateBin(s, b)
		return true
	}
	w := o.FrontDepth[s][b] * dthl
	win := 0.0
	if top && o.asw > 0 {
		gs := c.Soil.CapillaryDrive(thl, c.Soil.Ths)
		win = math.Min(o.asw, o.DT*c.Soil.Ks*(1.0+gs/z))
		o.asw -= win
	}
	o.MoistureChange[s][b] = thNew - th
	o.Moisture[s][b] = thNew
	o.FrontDepth[s][b] = (w + win) / (thNew - thl)
	return false
}
