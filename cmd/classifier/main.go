package main

import (
    "encoding/csv"
    "flag"
    "fmt"
    "os"
    "strconv"

    "go.uber.org/zap"

    "extratrees/internal/dataset"
    "extratrees/internal/models"
    "extratrees/pkg/utils"
)

func usage(fs *flag.FlagSet) {
    fmt.Println("usage: classifier -m <in:modelfile> -t <in:datafile.csv> [-o <out:predictions.csv>]")
    fmt.Println()
    fs.PrintDefaults()
}

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    fmt.Println("extremely randomized trees classifier")
    fmt.Println()

    fs := flag.NewFlagSet("classifier", flag.ContinueOnError)
    modelFile := fs.String("m", "", "input model file (required)")
    dataFile := fs.String("t", "", "input data file, in comma-separated-value format (required)")
    outFile := fs.String("o", "", "output predictions file (default is standard output)")
    if err := fs.Parse(os.Args[1:]); err != nil {
        usage(fs)
        os.Exit(0)
    }

    bad := false
    if *modelFile == "" {
        fmt.Println("command line parameter needed: -m <in:modelfile>")
        bad = true
    }
    if *dataFile == "" {
        fmt.Println("command line parameter needed: -t <in:datafile.csv>")
        bad = true
    }
    if bad {
        fmt.Println()
        usage(fs)
        os.Exit(0)
    }

    fmt.Print("reading model...")
    m, err := models.ReadModelFile(*modelFile)
    if err != nil {
        fmt.Println()
        logger.Fatal("reading model", zap.Error(err))
    }
    fmt.Printf(" %d trees, %d features, %d classes\n",
        len(m.Forest.Trees), len(m.AttrNames), len(m.Forest.IndexToLabel))

    exclude := make(map[string]bool, len(m.ExNames))
    for _, name := range m.ExNames { exclude[name] = true }

    fmt.Print("reading examples...")
    set, err := dataset.LoadFile(*dataFile, m.LabelName, exclude, false)
    if err != nil {
        fmt.Println()
        logger.Fatal("reading data", zap.Error(err))
    }
    fmt.Printf(" %d examples read\n", set.NumExamples())

    if err := checkFeatures(set.Names, m.AttrNames); err != nil {
        logger.Fatal("feature mismatch", zap.Error(err))
    }

    labeled := set.LabelName != ""

    out := os.Stdout
    if *outFile != "" {
        f, err := os.Create(*outFile)
        if err != nil { logger.Fatal("creating predictions file", zap.Error(err)) }
        defer f.Close()
        out = f
    }

    w := csv.NewWriter(out)
    header := append(append([]string{}, set.ExNames...), "predicted_"+m.LabelName)
    if err := w.Write(header); err != nil { logger.Fatal("writing predictions", zap.Error(err)) }

    correct := 0
    for i, x := range set.FeatureVectors {
        predicted := m.Forest.Classify(x)
        if labeled && predicted == set.Labels[i] { correct++ }

        var rec []string
        if len(set.ExFeatureVectors) > 0 { rec = append(rec, set.ExFeatureVectors[i]...) }
        rec = append(rec, strconv.Itoa(predicted))
        if err := w.Write(rec); err != nil { logger.Fatal("writing predictions", zap.Error(err)) }
    }
    w.Flush()
    if err := w.Error(); err != nil { logger.Fatal("writing predictions", zap.Error(err)) }

    if labeled {
        fmt.Printf("accuracy: %g\n", float64(correct)/float64(set.NumExamples()))
    }
    logger.Info("predictions written",
        zap.Int("examples", set.NumExamples()),
        zap.Bool("labeled", labeled),
        zap.String("out", *outFile))
}

// checkFeatures demands the data columns line up with the model's
// attribute order, since trees index features by position.
func checkFeatures(got, want []string) error {
    if len(got) != len(want) {
        return fmt.Errorf("model expects %d feature columns, data has %d", len(want), len(got))
    }
    for i := range want {
        if got[i] != want[i] {
            return fmt.Errorf("feature column %d: model expects %q, data has %q", i, want[i], got[i])
        }
    }
    return nil
}
