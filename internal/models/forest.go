package models

import (
    "extratrees/internal/dataset"
    "extratrees/internal/rng"
)

// Forest is an ensemble of extremely randomized trees over one training
// set. IndexToLabel maps dense class indices back to the original label
// values, in the canonical (sorted) label order.
type Forest struct {
    Trees        []*Tree
    IndexToLabel []int
}

// BuildForest grows numTrees independent trees over the full example set.
// Every tree sees all examples and starts from all attributes; randomness
// comes entirely from the per-branch attribute and split-value draws.
func BuildForest(set *dataset.Set, numTrees, nmin, numAttr int, rnd *rng.Rand) *Forest {
    cols := dataset.NewColumns(set)

    attrIndices := make([]int, set.NumFeatures())
    for i := range attrIndices { attrIndices[i] = i }
    indices := make([]int, set.NumExamples())
    for i := range indices { indices[i] = i }

    trees := make([]*Tree, 0, numTrees)
    for t := 0; t < numTrees; t++ {
        trees = append(trees, buildTree(cols, attrIndices, indices, nmin, numAttr, rnd))
    }

    return &Forest{Trees: trees, IndexToLabel: cols.LabelValues}
}

// Votes tallies the per-tree majority votes for x, indexed like
// IndexToLabel.
func (f *Forest) Votes(x dataset.FeatureVector) []int {
    votes := make([]int, len(f.IndexToLabel))
    for _, t := range f.Trees {
        votes[t.ClassifyIndex(x)]++
    }
    return votes
}

// Classify returns the label value winning the majority of per-tree
// majorities. Ties keep the lowest class index.
func (f *Forest) Classify(x dataset.FeatureVector) int {
    votes := f.Votes(x)
    maxCount, maxIndex := 0, 0
    for ci, count := range votes {
        if count > maxCount {
            maxCount = count
            maxIndex = ci
        }
    }
    return f.IndexToLabel[maxIndex]
}

// Accuracy is the fraction of the set's examples the forest labels
// correctly.
func (f *Forest) Accuracy(set *dataset.Set) float64 {
    if set.NumExamples() == 0 { return 0 }
    correct := 0
    for i, x := range set.FeatureVectors {
        if f.Classify(x) == set.Labels[i] { correct++ }
    }
    return float64(correct) / float64(set.NumExamples())
}
