package models

import (
    "extratrees/internal/dataset"
    "extratrees/internal/rng"
)

// Tree is a binary decision tree node. A leaf carries the class-frequency
// histogram of the training examples that reached it; a branch routes
// examples with attr < SplitValue left and the rest right.
type Tree struct {
    IsLeaf     bool
    ClassFreqs []int

    AttrIndex  int
    SplitValue float32
    Left       *Tree
    Right      *Tree
}

func newLeaf(classFreqs []int) *Tree {
    return &Tree{IsLeaf: true, ClassFreqs: classFreqs}
}

// buildTree grows one extremely randomized tree over the example subset
// indices, sampling split attributes from attrIndices. Per the original
// Extra-Trees formulation each branch draws up to numAttr non-constant
// attributes without replacement and one uniform split value apiece, then
// keeps the highest-scoring pair. The sampled attribute set is what both
// child builds draw from.
func buildTree(cols *dataset.Columns, attrIndices, indices []int, nmin, numAttr int, rnd *rng.Rand) *Tree {
    classFreqs := make([]int, cols.NumClasses)
    for _, i := range indices {
        classFreqs[cols.Labels[i]]++
    }

    if len(indices) < nmin { return newLeaf(classFreqs) }

    nonzero := 0
    for _, c := range classFreqs {
        if c != 0 { nonzero++ }
    }
    if nonzero == 1 { return newLeaf(classFreqs) }

    // per-attribute min and max over the subset; attributes that vary are
    // the split candidates
    mins := make([]float32, len(cols.Attrs))
    maxs := make([]float32, len(cols.Attrs))
    var candidates []int
    for _, ai := range attrIndices {
        attr := cols.Attrs[ai]
        min, max := attr[indices[0]], attr[indices[0]]
        for _, i := range indices[1:] {
            a := attr[i]
            if a < min {
                min = a
            } else if a > max {
                max = a
            }
        }
        mins[ai], maxs[ai] = min, max
        if min < max { candidates = append(candidates, ai) }
    }

    if len(candidates) == 0 { return newLeaf(classFreqs) }

    // sample without replacement, swap-pop
    var attrs []int
    if len(candidates) <= numAttr {
        attrs = candidates
    } else {
        for k := 0; k < numAttr; k++ {
            target := rnd.Intn(len(candidates))
            attrs = append(attrs, candidates[target])
            candidates[target] = candidates[len(candidates)-1]
            candidates = candidates[:len(candidates)-1]
        }
    }

    bestAttr := attrs[0]
    var bestSplit float32
    bestScore := -1.0
    for _, ai := range attrs {
        split := rnd.Float32Range(mins[ai], maxs[ai])
        scr := Score(cols.Attrs[ai], cols.Labels, cols.NumClasses, indices, split)
        if scr > bestScore {
            bestAttr = ai
            bestSplit = split
            bestScore = scr
        }
    }

    var leftIndices, rightIndices []int
    attr := cols.Attrs[bestAttr]
    for _, i := range indices {
        if attr[i] < bestSplit {
            leftIndices = append(leftIndices, i)
        } else {
            rightIndices = append(rightIndices, i)
        }
    }

    return &Tree{
        AttrIndex:  bestAttr,
        SplitValue: bestSplit,
        Left:       buildTree(cols, attrs, leftIndices, nmin, numAttr, rnd),
        Right:      buildTree(cols, attrs, rightIndices, nmin, numAttr, rnd),
    }
}

// leafFor walks the tree with strict < routing; a value equal to the split
// goes right.
func (t *Tree) leafFor(x dataset.FeatureVector) *Tree {
    for !t.IsLeaf {
        if x[t.AttrIndex] < t.SplitValue {
            t = t.Left
        } else {
            t = t.Right
        }
    }
    return t
}

// ClassifyIndex returns the dense label index of the majority class in the
// leaf reached by x. Ties keep the lowest index.
func (t *Tree) ClassifyIndex(x dataset.FeatureVector) int {
    leaf := t.leafFor(x)
    maxFreq, maxIndex := 0, 0
    for ci, freq := range leaf.ClassFreqs {
        if freq > maxFreq {
            maxFreq = freq
            maxIndex = ci
        }
    }
    return maxIndex
}
