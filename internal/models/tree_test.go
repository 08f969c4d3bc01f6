package models

import (
    "testing"

    "extratrees/internal/dataset"
    "extratrees/internal/rng"
)

func columnsFor(t *testing.T, set *dataset.Set) *dataset.Columns {
    t.Helper()
    return dataset.NewColumns(set)
}

func buildOne(set *dataset.Set, nmin, numAttr int, seed int64) *Tree {
    cols := dataset.NewColumns(set)
    attrIndices := make([]int, set.NumFeatures())
    for i := range attrIndices { attrIndices[i] = i }
    indices := make([]int, set.NumExamples())
    for i := range indices { indices[i] = i }
    return buildTree(cols, attrIndices, indices, nmin, numAttr, rng.NewSeeded(seed))
}

func TestConstantLabelsGiveSingleLeaf(t *testing.T) {
    set := &dataset.Set{
        Names:    []string{"a", "b"},
        LabelSet: []int{0},
    }
    for i := 0; i < 10; i++ {
        set.FeatureVectors = append(set.FeatureVectors, dataset.FeatureVector{float32(i), float32(i * i)})
        set.Labels = append(set.Labels, 0)
    }

    tree := buildOne(set, 1, 2, 1)
    if !tree.IsLeaf { t.Fatal("pure set built a branch, want a single leaf") }
    if len(tree.ClassFreqs) != 1 || tree.ClassFreqs[0] != 10 {
        t.Fatalf("leaf histogram = %v, want [10]", tree.ClassFreqs)
    }
}

func TestConstantFeaturesGiveSingleLeaf(t *testing.T) {
    set := &dataset.Set{
        Names:    []string{"a", "b"},
        LabelSet: []int{0, 1},
        Labels:   []int{0, 1, 0, 1},
    }
    for i := 0; i < 4; i++ {
        set.FeatureVectors = append(set.FeatureVectors, dataset.FeatureVector{5, 5})
    }

    tree := buildOne(set, 1, 2, 1)
    if !tree.IsLeaf { t.Fatal("constant-feature set built a branch, want a single leaf") }
    if len(tree.ClassFreqs) != 2 || tree.ClassFreqs[0] != 2 || tree.ClassFreqs[1] != 2 {
        t.Fatalf("leaf histogram = %v, want [2 2]", tree.ClassFreqs)
    }
}

func TestSmallNodeRule(t *testing.T) {
    set := &dataset.Set{
        Names:          []string{"a"},
        LabelSet:       []int{0, 1},
        Labels:         []int{0, 1, 0, 1},
        FeatureVectors: []dataset.FeatureVector{{1}, {2}, {3}, {4}},
    }
    tree := buildOne(set, 5, 1, 1)
    if !tree.IsLeaf { t.Fatal("set smaller than nmin built a branch, want a leaf") }
}

func checkHistograms(t *testing.T, tree *Tree, cols *dataset.Columns, indices []int) {
    t.Helper()
    want := make([]int, cols.NumClasses)
    for _, i := range indices { want[cols.Labels[i]]++ }
    if tree.IsLeaf {
        for ci := range want {
            if tree.ClassFreqs[ci] != want[ci] {
                t.Fatalf("leaf histogram = %v, want %v", tree.ClassFreqs, want)
            }
        }
        return
    }
    var left, right []int
    attr := cols.Attrs[tree.AttrIndex]
    for _, i := range indices {
        if attr[i] < tree.SplitValue { left = append(left, i) } else { right = append(right, i) }
    }
    if len(left) == 0 || len(right) == 0 {
        t.Fatal("branch with an empty side")
    }
    checkHistograms(t, tree.Left, cols, left)
    checkHistograms(t, tree.Right, cols, right)
}

func TestLeafHistogramsMatchRoutedExamples(t *testing.T) {
    set := wideTrainingSet(60, 4, 3, 11)
    cols := columnsFor(t, set)
    tree := buildOne(set, 2, 2, 12)
    indices := make([]int, set.NumExamples())
    for i := range indices { indices[i] = i }
    checkHistograms(t, tree, cols, indices)
}

func TestRoutingReachesOwnBucket(t *testing.T) {
    set := wideTrainingSet(40, 3, 2, 21)
    tree := buildOne(set, 2, 2, 22)
    cols := dataset.NewColumns(set)
    for i, x := range set.FeatureVectors {
        leaf := tree.leafFor(x)
        if leaf.ClassFreqs[cols.Labels[i]] == 0 {
            t.Fatalf("example %d routed to a leaf with no count for its class", i)
        }
    }
}

func TestClassifyIndexTieKeepsLowest(t *testing.T) {
    leaf := newLeaf([]int{3, 3, 1})
    if got := leaf.ClassifyIndex(dataset.FeatureVector{0}); got != 0 {
        t.Fatalf("tie broke to index %d, want 0", got)
    }
}

// wideTrainingSet builds a deterministic synthetic set whose label depends
// on the first feature, leaving the rest as noise.
func wideTrainingSet(n, features, classes int, seed int64) *dataset.Set {
    rnd := rng.NewSeeded(seed)
    set := &dataset.Set{}
    for j := 0; j < features; j++ {
        set.Names = append(set.Names, string(rune('a'+j)))
    }
    for c := 0; c < classes; c++ { set.LabelSet = append(set.LabelSet, c) }
    for i := 0; i < n; i++ {
        fv := make(dataset.FeatureVector, features)
        for j := range fv { fv[j] = rnd.Float32Range(0, 10) }
        set.FeatureVectors = append(set.FeatureVectors, fv)
        set.Labels = append(set.Labels, int(fv[0])*classes/10%classes)
    }
    return set
}
