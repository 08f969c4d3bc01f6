package models

import (
    "bufio"
    "fmt"
    "io"
    "os"
    "strconv"
    "strings"

    "extratrees/internal/dataset"
)

const (
    markerLeaf   = `\`
    markerBranch = "+"
)

// LoadedModel is everything a reader reconstructs from a model file.
type LoadedModel struct {
    LabelName string
    ExNames   []string
    AttrNames []string
    Forest    *Forest
    NumTrees  int
    Nmin      int
    NumAttr   int
    OptLayers int
}

// WriteModelFile overwrites path with the textual model.
func WriteModelFile(path string, set *dataset.Set, f *Forest, nmin, numAttr, optLayers int) error {
    out, err := os.Create(path)
    if err != nil { return err }
    if err := WriteModel(out, set, f, nmin, numAttr, optLayers); err != nil {
        out.Close()
        return fmt.Errorf("writing %s: %w", path, err)
    }
    return out.Close()
}

// WriteModel emits the line-oriented model text: the label line, excluded
// and included feature names, the hyperparameter line, then every tree in
// pre-order with one node per line.
func WriteModel(w io.Writer, set *dataset.Set, f *Forest, nmin, numAttr, optLayers int) error {
    bw := bufio.NewWriter(w)

    bw.WriteString(set.LabelName)
    for _, l := range set.LabelSet {
        fmt.Fprintf(bw, " %d", l)
    }
    bw.WriteByte('\n')

    bw.WriteString(strings.Join(set.ExNames, " "))
    bw.WriteByte('\n')
    bw.WriteString(strings.Join(set.Names, " "))
    bw.WriteByte('\n')

    fmt.Fprintf(bw, "%d %d %d %d\n", len(f.Trees), nmin, numAttr, optLayers)

    for _, t := range f.Trees {
        writeTree(bw, t)
    }

    return bw.Flush()
}

func writeTree(bw *bufio.Writer, t *Tree) {
    if t.IsLeaf {
        bw.WriteString(markerLeaf)
        for _, freq := range t.ClassFreqs {
            fmt.Fprintf(bw, " %d", freq)
        }
        bw.WriteByte('\n')
        return
    }
    // shortest exact float32 form, so a written model reloads bit-identical
    fmt.Fprintf(bw, "%s %d %s\n", markerBranch, t.AttrIndex,
        strconv.FormatFloat(float64(t.SplitValue), 'g', -1, 32))
    writeTree(bw, t.Left)
    writeTree(bw, t.Right)
}

// ReadModelFile loads a model written by WriteModelFile.
func ReadModelFile(path string) (*LoadedModel, error) {
    f, err := os.Open(path)
    if err != nil { return nil, err }
    defer f.Close()
    m, err := ReadModel(f)
    if err != nil { return nil, fmt.Errorf("%s: %w", path, err) }
    return m, nil
}

// ReadModel parses the textual model format back into a forest and its
// metadata.
func ReadModel(r io.Reader) (*LoadedModel, error) {
    sc := bufio.NewScanner(r)
    sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

    line, err := scanLine(sc)
    if err != nil { return nil, fmt.Errorf("label line: %w", err) }
    fields := strings.Fields(line)
    if len(fields) < 2 {
        return nil, fmt.Errorf("label line: want a label name and at least one label, got %q", line)
    }
    m := &LoadedModel{LabelName: fields[0]}
    indexToLabel := make([]int, 0, len(fields)-1)
    for _, tok := range fields[1:] {
        l, err := strconv.Atoi(tok)
        if err != nil { return nil, fmt.Errorf("label line: %w", err) }
        indexToLabel = append(indexToLabel, l)
    }

    line, err = scanLine(sc)
    if err != nil { return nil, fmt.Errorf("excluded names line: %w", err) }
    m.ExNames = strings.Fields(line)

    line, err = scanLine(sc)
    if err != nil { return nil, fmt.Errorf("feature names line: %w", err) }
    m.AttrNames = strings.Fields(line)

    line, err = scanLine(sc)
    if err != nil { return nil, fmt.Errorf("hyperparameter line: %w", err) }
    if _, err := fmt.Sscanf(line, "%d %d %d %d",
        &m.NumTrees, &m.Nmin, &m.NumAttr, &m.OptLayers); err != nil {
        return nil, fmt.Errorf("hyperparameter line %q: %w", line, err)
    }

    m.Forest = &Forest{IndexToLabel: indexToLabel}
    for t := 0; t < m.NumTrees; t++ {
        tree, err := readTree(sc, len(indexToLabel))
        if err != nil { return nil, fmt.Errorf("tree %d: %w", t, err) }
        m.Forest.Trees = append(m.Forest.Trees, tree)
    }

    return m, nil
}

func scanLine(sc *bufio.Scanner) (string, error) {
    if !sc.Scan() {
        if err := sc.Err(); err != nil { return "", err }
        return "", io.ErrUnexpectedEOF
    }
    return sc.Text(), nil
}

func readTree(sc *bufio.Scanner, numClasses int) (*Tree, error) {
    line, err := scanLine(sc)
    if err != nil { return nil, err }
    fields := strings.Fields(line)
    if len(fields) == 0 { return nil, fmt.Errorf("empty node line") }

    switch fields[0] {
    case markerLeaf:
        if len(fields) != 1+numClasses {
            return nil, fmt.Errorf("leaf %q: want %d frequencies", line, numClasses)
        }
        freqs := make([]int, 0, numClasses)
        for _, tok := range fields[1:] {
            freq, err := strconv.Atoi(tok)
            if err != nil { return nil, fmt.Errorf("leaf %q: %w", line, err) }
            freqs = append(freqs, freq)
        }
        return newLeaf(freqs), nil

    case markerBranch:
        if len(fields) != 3 {
            return nil, fmt.Errorf("branch %q: want attrindex and splitvalue", line)
        }
        attrIndex, err := strconv.Atoi(fields[1])
        if err != nil { return nil, fmt.Errorf("branch %q: %w", line, err) }
        splitValue, err := strconv.ParseFloat(fields[2], 32)
        if err != nil { return nil, fmt.Errorf("branch %q: %w", line, err) }
        left, err := readTree(sc, numClasses)
        if err != nil { return nil, err }
        right, err := readTree(sc, numClasses)
        if err != nil { return nil, err }
        return &Tree{
            AttrIndex:  attrIndex,
            SplitValue: float32(splitValue),
            Left:       left,
            Right:      right,
        }, nil

    default:
        return nil, fmt.Errorf("unknown node marker %q", fields[0])
    }
}
