package nn

import "fmt"

// SplitInstances partitions a batch into its labeled and unlabeled
// instances by the isLabeled mask, preserving row order within each side.
// The labeled side carries the gathered labels; the unlabeled side never
// does. When targets is non-nil both sides carry the matching
// reconstruction-target rows. Either side may come back empty as a
// zero-value Instances.
//
// The mask, labels and targets must all cover the batch: a length or row
// mismatch panics, as does a labeled row with no labels to draw from.
func SplitInstances(tokens *TokenBatch, isLabeled []bool, targets *TokenBatch, labels []int) (labeled, unlabeled Instances) {
	rows, _ := tokens.Dims()
	if len(isLabeled) != rows {
		panic(fmt.Sprintf("nn: labeled mask length %d does not match batch rows %d", len(isLabeled), rows))
	}
	if labels != nil && len(labels) != rows {
		panic(fmt.Sprintf("nn: labels length %d does not match batch rows %d", len(labels), rows))
	}
	if targets != nil {
		if tr, _ := targets.Dims(); tr != rows {
			panic(fmt.Sprintf("nn: targets rows %d do not match batch rows %d", tr, rows))
		}
	}

	var labeledIdx, unlabeledIdx []int
	for i, lab := range isLabeled {
		if lab {
			labeledIdx = append(labeledIdx, i)
		} else {
			unlabeledIdx = append(unlabeledIdx, i)
		}
	}

	if len(labeledIdx) > 0 {
		if labels == nil {
			panic("nn: batch has labeled rows but labels is nil")
		}
		labeled.Tokens = tokens.SelectRows(labeledIdx)
		labeled.Labels = make([]int, len(labeledIdx))
		for k, idx := range labeledIdx {
			labeled.Labels[k] = labels[idx]
		}
		if targets != nil {
			labeled.Targets = targets.SelectRows(labeledIdx)
		}
	}

	if len(unlabeledIdx) > 0 {
		unlabeled.Tokens = tokens.SelectRows(unlabeledIdx)
		if targets != nil {
			unlabeled.Targets = targets.SelectRows(unlabeledIdx)
		}
	}
	return labeled, unlabeled
}
