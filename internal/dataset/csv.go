package dataset

import (
    "encoding/csv"
    "fmt"
    "io"
    "os"
    "sort"
    "strconv"
)

type colType int

const (
    colExclude colType = iota
    colFeature
    colLabel
)

// LoadFile reads a header-ed CSV of float feature columns and one integer
// label column. An empty labelColumn selects the last non-excluded column. Columns named
// in exclude are kept aside as string metadata. With requireLabel false a
// missing label column yields an unlabeled set instead of an error.
func LoadFile(path, labelColumn string, exclude map[string]bool, requireLabel bool) (*Set, error) {
    f, err := os.Open(path)
    if err != nil { return nil, err }
    defer f.Close()
    return Load(f, path, labelColumn, exclude, requireLabel)
}

func Load(r io.Reader, filename, labelColumn string, exclude map[string]bool, requireLabel bool) (*Set, error) {
    if exclude[labelColumn] && labelColumn != "" {
        return nil, fmt.Errorf("%s: label column %q is also excluded", filename, labelColumn)
    }

    cr := csv.NewReader(r)
    cr.FieldsPerRecord = -1 // column counts are checked here, with line context

    header, err := cr.Read()
    if err != nil {
        return nil, fmt.Errorf("%s: reading header: %w", filename, err)
    }
    numColumns := len(header)

    set := &Set{LabelName: labelColumn}
    columnMap := make([]colType, numColumns)
    labelFound := false
    for i, name := range header {
        switch {
        case name == labelColumn && labelColumn != "":
            columnMap[i] = colLabel
            labelFound = true
        case exclude[name]:
            columnMap[i] = colExclude
            set.ExNames = append(set.ExNames, name)
        default:
            columnMap[i] = colFeature
            set.Names = append(set.Names, name)
        }
    }

    if labelColumn == "" {
        // no label name given: assume the last non-excluded column
        if len(set.Names) == 0 {
            return nil, fmt.Errorf("%s: no candidate label column", filename)
        }
        for i := numColumns - 1; i >= 0; i-- {
            if columnMap[i] == colFeature {
                columnMap[i] = colLabel
                break
            }
        }
        set.LabelName = set.Names[len(set.Names)-1]
        set.Names = set.Names[:len(set.Names)-1]
        labelFound = true
    }
    if !labelFound {
        if requireLabel {
            return nil, fmt.Errorf("%s: label column %q not found", filename, labelColumn)
        }
        set.LabelName = ""
    }
    if len(set.ExNames) != len(exclude) {
        return nil, fmt.Errorf("%s: not all excluded columns were found in the header", filename)
    }

    labelSeen := make(map[int]bool)
    for lineNum := 2; ; lineNum++ {
        record, err := cr.Read()
        if err == io.EOF { break }
        if err != nil {
            return nil, fmt.Errorf("%s: line %d: %w", filename, lineNum, err)
        }
        if len(record) != numColumns {
            return nil, fmt.Errorf("%s: wrong number of columns on line %d: expected %d, found %d",
                filename, lineNum, numColumns, len(record))
        }

        fv := make(FeatureVector, 0, len(set.Names))
        var exfv []string
        for col, token := range record {
            switch columnMap[col] {
            case colLabel:
                label, err := strconv.Atoi(token)
                if err != nil {
                    return nil, fmt.Errorf("%s: line %d: column %d: reading int: %w",
                        filename, lineNum, col, err)
                }
                set.Labels = append(set.Labels, label)
                if !labelSeen[label] {
                    labelSeen[label] = true
                    set.LabelSet = append(set.LabelSet, label)
                }
            case colFeature:
                v, err := strconv.ParseFloat(token, 32)
                if err != nil {
                    return nil, fmt.Errorf("%s: line %d: column %d: reading float: %w",
                        filename, lineNum, col, err)
                }
                fv = append(fv, float32(v))
            default:
                exfv = append(exfv, token)
            }
        }

        set.FeatureVectors = append(set.FeatureVectors, fv)
        if len(exfv) > 0 { set.ExFeatureVectors = append(set.ExFeatureVectors, exfv) }
    }

    sort.Ints(set.LabelSet)
    return set, nil
}
