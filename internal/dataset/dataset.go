package dataset

// FeatureVector holds one example's feature values in column order.
type FeatureVector []float32

// Set is a row-major labeled example set as produced by the CSV loader.
// LabelSet is kept sorted; its order defines the dense label indexing used
// everywhere downstream.
type Set struct {
    Names            []string
    FeatureVectors   []FeatureVector
    LabelName        string
    Labels           []int
    LabelSet         []int
    ExNames          []string
    ExFeatureVectors [][]string

    FeatureMeans   []float64
    FeatureStddevs []float64

    statsed    bool
    normalized bool
}

func (s *Set) NumExamples() int { return len(s.FeatureVectors) }

func (s *Set) NumFeatures() int { return len(s.Names) }

func (s *Set) NumClasses() int { return len(s.LabelSet) }
