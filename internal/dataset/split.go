package dataset

import "extratrees/internal/rng"

// Split partitions the set into two disjoint subsets, the first holding
// floor(p*N) randomly chosen examples. Both subsets share Names, LabelName
// and LabelSet with the parent; normalization state is not inherited.
func (s *Set) Split(rnd *rng.Rand, p float64) (*Set, *Set) {
    if p < 0 { p = 0 }
    if p > 1 { p = 1 }

    n := s.NumExamples()
    indices := rnd.Perm(n)
    divider := int(p * float64(n))

    first := &Set{
        Names:          s.Names,
        LabelName:      s.LabelName,
        LabelSet:       s.LabelSet,
        FeatureVectors: make([]FeatureVector, 0, divider),
        Labels:         make([]int, 0, divider),
    }
    second := &Set{
        Names:          s.Names,
        LabelName:      s.LabelName,
        LabelSet:       s.LabelSet,
        FeatureVectors: make([]FeatureVector, 0, n-divider),
        Labels:         make([]int, 0, n-divider),
    }

    for _, i := range indices[:divider] {
        first.FeatureVectors = append(first.FeatureVectors, s.FeatureVectors[i])
        first.Labels = append(first.Labels, s.Labels[i])
    }
    for _, i := range indices[divider:] {
        second.FeatureVectors = append(second.FeatureVectors, s.FeatureVectors[i])
        second.Labels = append(second.Labels, s.Labels[i])
    }

    return first, second
}
