package uicore

// partitionData builds each layer's LayerUpdatePartition/LayerDrawPartition
// from the current visible-node ordering, clip-rect runs and
// attachment lists. Draw partitions are restricted to data on draw-visible
// nodes; update partitions cover every data on a visible node regardless of
// clip culling, since a layer may still need to recompute geometry for a
// node that is temporarily fully clipped. CompositeRectOffsets/Sizes are
// built per draw-visible node from that node's own absolute rect clipped by
// its active clip run, not from the clip-rect runs themselves — a
// compositing layer only needs to touch the screen area a node actually
// covers.
func (ui *UserInterface) partitionData() {
	if ui.layerPartitions == nil {
		ui.layerPartitions = make(map[LayerHandle]LayerUpdatePartition)
	}
	if ui.layerDrawPartitions == nil {
		ui.layerDrawPartitions = make(map[LayerHandle]LayerDrawPartition)
	}

	type building struct {
		updateIDs        []uint32
		clipRectIDs      []uint32
		clipRectCounts   []uint32
		nodeOffsets      []Vec2
		nodeSizes        []Vec2
		nodeOpacities    []float64
		enabledMask      []bool
		drawOffsets      []Vec2
		drawSizes        []Vec2
		drawClipOffsets  []Vec2
		drawClipSizes    []Vec2
		compositeOffsets []Vec2
		compositeSizes   []Vec2
	}
	byLayer := make(map[LayerHandle]*building)

	for vi, node := range ui.visibleNodeIDs {
		n := ui.nodes.get(node.index())
		runIdx := ui.clipRunIndex[vi]
		for _, att := range ui.dataAttachments[node] {
			b := byLayer[att.layer]
			if b == nil {
				b = &building{}
				byLayer[att.layer] = b
			}
			b.updateIDs = append(b.updateIDs, att.data.Local)
			if len(b.clipRectIDs) > 0 && b.clipRectIDs[len(b.clipRectIDs)-1] == uint32(runIdx) {
				b.clipRectCounts[len(b.clipRectCounts)-1]++
			} else {
				b.clipRectIDs = append(b.clipRectIDs, uint32(runIdx))
				b.clipRectCounts = append(b.clipRectCounts, 1)
			}
			b.nodeOffsets = append(b.nodeOffsets, ui.absoluteOffset[node.index()])
			b.nodeSizes = append(b.nodeSizes, n.size)
			b.nodeOpacities = append(b.nodeOpacities, ui.absoluteOpacity[node.index()])
			b.enabledMask = append(b.enabledMask, ui.enabledMask[node.index()])

			if ui.drawVisible[node.index()] {
				b.drawOffsets = append(b.drawOffsets, ui.absoluteOffset[node.index()])
				b.drawSizes = append(b.drawSizes, n.size)
				b.drawClipOffsets = append(b.drawClipOffsets, ui.clipRectOffsets[runIdx])
				b.drawClipSizes = append(b.drawClipSizes, ui.clipRectSizes[runIdx])

				// The composite rect is the node's own absolute rect
				// clipped by its active clip run, not the clip run itself —
				// compositing only needs to touch pixels the node actually
				// covers.
				composite, ok := (Rect{Offset: ui.clipRectOffsets[runIdx], Size: ui.clipRectSizes[runIdx]}).
					Intersect(Rect{Offset: ui.absoluteOffset[node.index()], Size: n.size})
				if !ok {
					composite = Rect{}
				}
				b.compositeOffsets = append(b.compositeOffsets, composite.Offset)
				b.compositeSizes = append(b.compositeSizes, composite.Size)
			}
		}
	}

	for h := range ui.layerPartitions {
		delete(ui.layerPartitions, h)
	}
	for h := range ui.layerDrawPartitions {
		delete(ui.layerDrawPartitions, h)
	}
	for h, b := range byLayer {
		ui.layerPartitions[h] = LayerUpdatePartition{
			DataToUpdateIDs:               b.updateIDs,
			DataToUpdateClipRectIDs:       b.clipRectIDs,
			DataToUpdateClipRectDataCount: b.clipRectCounts,
			NodeOffsets:                   b.nodeOffsets,
			NodeSizes:                     b.nodeSizes,
			NodeOpacities:                 b.nodeOpacities,
			EnabledMask:                   b.enabledMask,
			ClipRectOffsets:               ui.clipRectOffsets,
			ClipRectSizes:                 ui.clipRectSizes,
			CompositeRectOffsets:          b.compositeOffsets,
			CompositeRectSizes:            b.compositeSizes,
		}
		ui.layerDrawPartitions[h] = LayerDrawPartition{
			Offsets:         b.drawOffsets,
			Sizes:           b.drawSizes,
			ClipRectOffsets: b.drawClipOffsets,
			ClipRectSizes:   b.drawClipSizes,
		}
	}
}

// DrawPartition returns the most recently computed draw partition for
// layer, for use by Draw.
func (ui *UserInterface) DrawPartition(layer LayerHandle) LayerDrawPartition {
	return ui.layerDrawPartitions[layer]
}
