package models

import (
    "bytes"
    "strings"
    "testing"

    "extratrees/internal/dataset"
    "extratrees/internal/rng"
)

func trainedSetAndForest(t *testing.T) (*dataset.Set, *Forest) {
    t.Helper()
    set := wideTrainingSet(50, 4, 3, 71)
    set.LabelName = "label"
    set.ExNames = []string{"id"}
    f := BuildForest(set, 8, 2, 2, rng.NewSeeded(72))
    return set, f
}

func TestModelRoundTrip(t *testing.T) {
    set, f := trainedSetAndForest(t)

    var buf bytes.Buffer
    if err := WriteModel(&buf, set, f, 2, 2, 3); err != nil { t.Fatal(err) }
    first := buf.String()

    m, err := ReadModel(strings.NewReader(first))
    if err != nil { t.Fatal(err) }

    if m.LabelName != "label" { t.Fatalf("LabelName = %q", m.LabelName) }
    if m.NumTrees != 8 || m.Nmin != 2 || m.NumAttr != 2 || m.OptLayers != 3 {
        t.Fatalf("hyperparameters = (%d, %d, %d, %d), want (8, 2, 2, 3)",
            m.NumTrees, m.Nmin, m.NumAttr, m.OptLayers)
    }
    if len(m.AttrNames) != set.NumFeatures() {
        t.Fatalf("AttrNames = %v", m.AttrNames)
    }
    if len(m.ExNames) != 1 || m.ExNames[0] != "id" {
        t.Fatalf("ExNames = %v, want [id]", m.ExNames)
    }

    // serialize -> deserialize -> serialize must reproduce the byte stream
    reload := &dataset.Set{
        Names:     m.AttrNames,
        LabelName: m.LabelName,
        LabelSet:  m.Forest.IndexToLabel,
        ExNames:   m.ExNames,
    }
    var buf2 bytes.Buffer
    if err := WriteModel(&buf2, reload, m.Forest, m.Nmin, m.NumAttr, m.OptLayers); err != nil {
        t.Fatal(err)
    }
    if first != buf2.String() {
        t.Fatal("second serialization differs from the first")
    }
}

func TestReloadedForestClassifiesIdentically(t *testing.T) {
    set, f := trainedSetAndForest(t)

    var buf bytes.Buffer
    if err := WriteModel(&buf, set, f, 2, 2, 1); err != nil { t.Fatal(err) }
    m, err := ReadModel(&buf)
    if err != nil { t.Fatal(err) }

    rnd := rng.NewSeeded(73)
    for q := 0; q < 100; q++ {
        x := make(dataset.FeatureVector, set.NumFeatures())
        for j := range x { x[j] = rnd.Float32Range(-5, 15) }
        if got, want := m.Forest.Classify(x), f.Classify(x); got != want {
            t.Fatalf("query %d: reloaded forest classified %d, original %d", q, got, want)
        }
    }
}

func TestWriteReadModelFile(t *testing.T) {
    set, f := trainedSetAndForest(t)
    path := t.TempDir() + "/model.txt"
    if err := WriteModelFile(path, set, f, 2, 2, 1); err != nil { t.Fatal(err) }
    m, err := ReadModelFile(path)
    if err != nil { t.Fatal(err) }
    if len(m.Forest.Trees) != 8 { t.Fatalf("read %d trees, want 8", len(m.Forest.Trees)) }
}

func TestReadModelMalformed(t *testing.T) {
    tests := []struct {
        name string
        in   string
    }{
        {"empty", ""},
        {"label line only", "label 0 1\n"},
        {"bad label value", "label 0 x\n\na b\n1 1 1 1\n"},
        {"bad hyperparameters", "label 0 1\n\na b\n1 1\n"},
        {"missing trees", "label 0 1\n\na b\n2 1 1 1\n\\ 1 1\n"},
        {"unknown marker", "label 0 1\n\na b\n1 1 1 1\n? 1 1\n"},
        {"leaf frequency count", "label 0 1\n\na b\n1 1 1 1\n\\ 1 2 3\n"},
        {"truncated branch", "label 0 1\n\na b\n1 1 1 1\n+ 0 0.5\n\\ 1 1\n"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if _, err := ReadModel(strings.NewReader(tt.in)); err == nil {
                t.Fatal("want error, got nil")
            }
        })
    }
}
