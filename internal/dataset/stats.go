package dataset

import "math"

// ComputeFeatureStats fills FeatureMeans and FeatureStddevs. Idempotent
// until the next normalization.
func (s *Set) ComputeFeatureStats() {
    if s.statsed { return }

    s.FeatureMeans = make([]float64, s.NumFeatures())
    for _, fv := range s.FeatureVectors {
        for j, v := range fv { s.FeatureMeans[j] += float64(v) }
    }
    rnum := 1.0 / float64(s.NumExamples())
    for j := range s.FeatureMeans { s.FeatureMeans[j] *= rnum }

    s.FeatureStddevs = make([]float64, s.NumFeatures())
    for _, fv := range s.FeatureVectors {
        for j, v := range fv {
            dev := s.FeatureMeans[j] - float64(v)
            s.FeatureStddevs[j] += dev * dev
        }
    }
    for j := range s.FeatureStddevs {
        s.FeatureStddevs[j] = math.Sqrt(s.FeatureStddevs[j] * rnum)
    }

    s.statsed = true
}

// NormalizeFeatures rescales every feature to (x - mean) / stddev in place.
// Features with zero deviation are left centered only. The tree builder is
// scale-invariant, so this exists for consumers that want comparable
// feature magnitudes.
func (s *Set) NormalizeFeatures() {
    if s.normalized { return }
    if !s.statsed { s.ComputeFeatureStats() }

    rstddevs := make([]float64, s.NumFeatures())
    for j, sd := range s.FeatureStddevs {
        if sd == 0 { rstddevs[j] = 1 } else { rstddevs[j] = 1 / sd }
    }

    for _, fv := range s.FeatureVectors {
        for j := range fv {
            fv[j] = float32((float64(fv[j]) - s.FeatureMeans[j]) * rstddevs[j])
        }
    }

    s.statsed = false // old stats no longer describe the data
    s.normalized = true
}

// NormalizeFeaturesWith applies a previously computed mean/stddev pair, for
// normalizing a test split with its training split's statistics.
func (s *Set) NormalizeFeaturesWith(means, stddevs []float64) {
    s.FeatureMeans = means
    s.FeatureStddevs = stddevs
    s.statsed = true
    s.NormalizeFeatures()
}
