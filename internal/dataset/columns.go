package dataset

// Columns is the attribute-major form consumed by the tree builder:
// Attrs[j][i] is example i's value for feature j, and Labels holds dense
// class indices so that LabelValues[Labels[i]] equals the original label.
type Columns struct {
    AttrNames   []string
    Attrs       [][]float32
    LabelValues []int
    Labels      []int
    NumClasses  int
}

// NewColumns pivots a row-major set to attribute-major storage and assigns
// each distinct label its index in LabelSet order.
func NewColumns(s *Set) *Columns {
    c := &Columns{
        AttrNames:   s.Names,
        Attrs:       make([][]float32, s.NumFeatures()),
        LabelValues: make([]int, 0, s.NumClasses()),
        Labels:      make([]int, 0, s.NumExamples()),
        NumClasses:  s.NumClasses(),
    }

    for j := range c.Attrs {
        c.Attrs[j] = make([]float32, s.NumExamples())
    }
    for i, fv := range s.FeatureVectors {
        for j, v := range fv {
            c.Attrs[j][i] = v
        }
    }

    labelToIndex := make(map[int]int, s.NumClasses())
    for _, l := range s.LabelSet {
        labelToIndex[l] = len(c.LabelValues)
        c.LabelValues = append(c.LabelValues, l)
    }
    for _, l := range s.Labels {
        c.Labels = append(c.Labels, labelToIndex[l])
    }

    return c
}
