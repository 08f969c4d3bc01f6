package dataset

import (
    "strings"
    "testing"
)

const basicCSV = `a,b,label
1.5,2,0
3,4.25,1
5,6,0
`

func TestLoadBasic(t *testing.T) {
    set, err := Load(strings.NewReader(basicCSV), "test.csv", "label", nil, true)
    if err != nil { t.Fatal(err) }

    if got := set.NumExamples(); got != 3 { t.Fatalf("NumExamples = %d, want 3", got) }
    if got := set.NumFeatures(); got != 2 { t.Fatalf("NumFeatures = %d, want 2", got) }
    if set.LabelName != "label" { t.Fatalf("LabelName = %q", set.LabelName) }

    wantNames := []string{"a", "b"}
    for i, name := range wantNames {
        if set.Names[i] != name { t.Fatalf("Names[%d] = %q, want %q", i, set.Names[i], name) }
    }
    wantLabels := []int{0, 1, 0}
    for i, l := range wantLabels {
        if set.Labels[i] != l { t.Fatalf("Labels[%d] = %d, want %d", i, set.Labels[i], l) }
    }
    if len(set.LabelSet) != 2 || set.LabelSet[0] != 0 || set.LabelSet[1] != 1 {
        t.Fatalf("LabelSet = %v, want [0 1]", set.LabelSet)
    }
    if set.FeatureVectors[1][1] != 4.25 {
        t.Fatalf("FeatureVectors[1][1] = %g, want 4.25", set.FeatureVectors[1][1])
    }
}

func TestLoadAssumesLastColumn(t *testing.T) {
    set, err := Load(strings.NewReader(basicCSV), "test.csv", "", nil, true)
    if err != nil { t.Fatal(err) }
    if set.LabelName != "label" { t.Fatalf("LabelName = %q, want label", set.LabelName) }
    if got := set.NumFeatures(); got != 2 { t.Fatalf("NumFeatures = %d, want 2", got) }
}

func TestLoadLabelSetSorted(t *testing.T) {
    in := "x,y\n1,5\n2,1\n3,3\n4,1\n"
    set, err := Load(strings.NewReader(in), "test.csv", "y", nil, true)
    if err != nil { t.Fatal(err) }
    want := []int{1, 3, 5}
    if len(set.LabelSet) != len(want) { t.Fatalf("LabelSet = %v, want %v", set.LabelSet, want) }
    for i := range want {
        if set.LabelSet[i] != want[i] { t.Fatalf("LabelSet = %v, want %v", set.LabelSet, want) }
    }
}

func TestLoadExcluded(t *testing.T) {
    in := "id,a,b,label\nrow1,1,2,0\nrow2,3,4,1\n"
    set, err := Load(strings.NewReader(in), "test.csv", "label", map[string]bool{"id": true}, true)
    if err != nil { t.Fatal(err) }
    if got := set.NumFeatures(); got != 2 { t.Fatalf("NumFeatures = %d, want 2", got) }
    if len(set.ExNames) != 1 || set.ExNames[0] != "id" {
        t.Fatalf("ExNames = %v, want [id]", set.ExNames)
    }
    if len(set.ExFeatureVectors) != 2 || set.ExFeatureVectors[1][0] != "row2" {
        t.Fatalf("ExFeatureVectors = %v", set.ExFeatureVectors)
    }
}

func TestLoadMissingLabelUnlabeled(t *testing.T) {
    in := "a,b\n1,2\n3,4\n"
    set, err := Load(strings.NewReader(in), "test.csv", "label", nil, false)
    if err != nil { t.Fatal(err) }
    if set.LabelName != "" { t.Fatalf("LabelName = %q, want empty", set.LabelName) }
    if len(set.Labels) != 0 { t.Fatalf("Labels = %v, want none", set.Labels) }
    if got := set.NumFeatures(); got != 2 { t.Fatalf("NumFeatures = %d, want 2", got) }
}

func TestLoadErrors(t *testing.T) {
    tests := []struct {
        name        string
        in          string
        labelColumn string
        exclude     map[string]bool
        requireLabel bool
    }{
        {"missing label column", "a,b\n1,2\n", "label", nil, true},
        {"bad float", "a,label\nnope,0\n", "label", nil, true},
        {"bad label int", "a,label\n1,x\n", "label", nil, true},
        {"wrong column count", "a,b,label\n1,2,0\n1,2\n", "label", nil, true},
        {"label column excluded", "a,label\n1,0\n", "label", map[string]bool{"label": true}, true},
        {"excluded column missing", "a,label\n1,0\n", "label", map[string]bool{"id": true}, true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if _, err := Load(strings.NewReader(tt.in), "test.csv", tt.labelColumn, tt.exclude, tt.requireLabel); err == nil {
                t.Fatal("want error, got nil")
            }
        })
    }
}
