// Copyright 2026 The HydPy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package garto

// MergeFrontDepthOvershootings merges every wetting front of
// compartment s that reached or passed the front of its left
// neighbour. The merged bin keeps the wetter moisture and a front depth
// conserving the combined water, measured against the moisture of the
// next bin further left. Merging repeats until no overshooting remains
func (o *Model) MergeFrontDepthOvershootings(s int) {
	for {
		merged := false
		for b := o.lastActive(s); b >= 2; b-- {
			if o.FrontDepth[s][b] == 0 || o.FrontDepth[s][b-1] == 0 {
				continue
			}
			if o.FrontDepth[s][b] < o.FrontDepth[s][b-1] {
				continue
			}
			if o.Moisture[s][b] <= o.Moisture[s][b-1] {
				continue
			}
			w := o.FrontDepth[s][b]*(o.Moisture[s][b]-o.Moisture[s][b-1]) +
				o.FrontDepth[s][b-1]*(o.Moisture[s][b-1]-o.Moisture[s][b-2])
			base := o.Moisture[s][b-2]
			th := o.Moisture[s][b]
			o.removeBin(s, b)
			o.Moisture[s][b-1] = th
			o.FrontDepth[s][b-1] = w / (th - base)
			o.MoistureChange[s][b-1] = 0
			merged = true
			break
		}
		if !merged {
			return
		}
	}
}

// MergeSoilDepthOvershootings folds the first wetting front of
// compartment s into the filled bin once it reached the soil bottom:
// the bulk moisture jumps to the front moisture and any water pushed
// beyond the bottom becomes percolation
func (o *Model) MergeSoilDepthOvershootings(s int) {
	c := &o.Comps[s]
	for o.FrontDepth[s][1] > 0 &&
		o.FrontDepth[s][1] >= c.Depth &&
		o.Moisture[s][1] > o.Moisture[s][0] {
		over := (o.FrontDepth[s][1] - c.Depth) * (o.Moisture[s][1] - o.Moisture[s][0])
		o.Percolation[s] += over
		o.Moisture[s][0] = o.Moisture[s][1]
		o.removeBin(s, 1)
	}
}
