package main

import (
    "encoding/csv"
    "flag"
    "fmt"
    "math"
    "os"
    "sort"
    "strconv"
    "strings"

    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"

    "go.uber.org/zap"

    "extratrees/internal/dataset"
    "extratrees/internal/models"
    "extratrees/internal/rng"
    "extratrees/pkg/utils"
)

const (
    defaultNumTrees = 10
    defaultNmin     = 4
    defaultLayers   = 3
)

type config struct {
    trainFile   string
    modelFile   string
    labelColumn string
    exclude     map[string]bool
    optimize    bool
    layers      int
    numTrees    int
    nmin        int
    numAttr     int

    // set when the user pinned the axis, which takes it out of the sweep
    numTreesPinned bool
    nminPinned     bool
    numAttrPinned  bool

    plotFile    string
    plotCSVFile string
}

func usage(fs *flag.FlagSet) {
    fmt.Println("usage: trainer -t <in:trainfile.csv> -m <out:modelfile> [optional other parameters]")
    fmt.Println()
    fs.PrintDefaults()
}

// parseArgs reads the command line into a config. A nil config means the
// caller should print usage and exit cleanly.
func parseArgs(args []string) (*config, *flag.FlagSet) {
    cfg := &config{
        layers:   defaultLayers,
        numTrees: defaultNumTrees,
        nmin:     defaultNmin,
    }

    fs := flag.NewFlagSet("trainer", flag.ContinueOnError)
    trainFile := fs.String("t", "", "input training data file, in comma-separated-value format (required)")
    modelFile := fs.String("m", "", "output model file (required)")
    labelColumn := fs.String("y", "", "name of the column that contains labels (default is last column)")
    excludeList := fs.String("e", "", "no-spaces, comma-separated list of columns to exclude")
    layers := fs.Int("l", defaultLayers, "enable hyperparameter optimization with this many re-checks per combination")
    nmin := fs.Int("nmin", defaultNmin, "minimum number of examples for a split; bigger reduces sensitivity")
    numAttr := fs.Int("numattr", 0, "attributes sampled per split; 0 means ceil(sqrt(num features))")
    numTrees := fs.Int("numtrees", defaultNumTrees, "number of decision trees to plant in the forest")
    plotFile := fs.String("plot", "", "write a PNG chart of the optimizer sweep (requires -l)")
    plotCSV := fs.String("plotcsv", "", "write a CSV of every evaluated grid point (requires -l)")

    if err := fs.Parse(args); err != nil { return nil, fs }

    cfg.trainFile = *trainFile
    cfg.modelFile = *modelFile
    cfg.labelColumn = *labelColumn
    cfg.layers = *layers
    cfg.nmin = *nmin
    cfg.numAttr = *numAttr
    cfg.numTrees = *numTrees
    cfg.plotFile = *plotFile
    cfg.plotCSVFile = *plotCSV

    cfg.exclude = make(map[string]bool)
    if *excludeList != "" {
        for _, name := range strings.Split(*excludeList, ",") {
            cfg.exclude[name] = true
        }
    }

    fs.Visit(func(f *flag.Flag) {
        switch f.Name {
        case "l":
            cfg.optimize = true
        case "nmin":
            cfg.nminPinned = true
        case "numattr":
            cfg.numAttrPinned = true
        case "numtrees":
            cfg.numTreesPinned = true
        }
    })

    bad := false
    if cfg.trainFile == "" {
        fmt.Println("command line parameter needed: -t <in:trainfile.csv>")
        bad = true
    }
    if cfg.modelFile == "" {
        fmt.Println("command line parameter needed: -m <out:modelfile>")
        bad = true
    }
    if cfg.optimize && cfg.layers < 1 {
        fmt.Printf("expected something like: -l (a positive number), got -l %d\n", cfg.layers)
        bad = true
    }
    if cfg.nminPinned && cfg.nmin < 1 {
        fmt.Printf("expected something like: -nmin (a positive number), got -nmin %d\n", cfg.nmin)
        bad = true
    }
    if cfg.numAttrPinned && cfg.numAttr < 0 {
        fmt.Printf("expected something like: -numattr (a nonnegative number), got -numattr %d\n", cfg.numAttr)
        bad = true
    }
    if cfg.numTreesPinned && cfg.numTrees < 1 {
        fmt.Printf("expected something like: -numtrees (a positive number), got -numtrees %d\n", cfg.numTrees)
        bad = true
    }
    if bad {
        fmt.Println()
        return nil, fs
    }

    return cfg, fs
}

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    fmt.Println("extremely randomized trees grower")
    fmt.Println()

    cfg, fs := parseArgs(os.Args[1:])
    if cfg == nil {
        usage(fs)
        os.Exit(0)
    }

    fmt.Print("reading examples...")
    set, err := dataset.LoadFile(cfg.trainFile, cfg.labelColumn, cfg.exclude, true)
    if err != nil {
        fmt.Println()
        logger.Fatal("reading training data", zap.Error(err))
    }
    fmt.Printf(" %d examples read\n", set.NumExamples())
    if cfg.labelColumn == "" {
        fmt.Printf("assuming label column is: %s\n", set.LabelName)
    }

    if cfg.numAttr == 0 {
        cfg.numAttr = int(math.Ceil(math.Sqrt(float64(set.NumFeatures()))))
    }

    rnd := rng.New()

    var (
        forest   *models.Forest
        numTrees = cfg.numTrees
        nmin     = cfg.nmin
        numAttr  = cfg.numAttr
        layers   = 1
    )

    if cfg.optimize {
        layers = cfg.layers
        params := models.OptimizeParams{
            Layers: layers,
        }
        if cfg.numTreesPinned { params.NumTrees = cfg.numTrees }
        if cfg.nminPinned { params.Nmin = cfg.nmin }
        if cfg.numAttrPinned { params.NumAttr = cfg.numAttr }

        result, err := models.Optimize(set, params, rnd, logger)
        if err != nil { logger.Fatal("hyperparameter sweep", zap.Error(err)) }

        forest = result.Forest
        numTrees, nmin, numAttr = result.NumTrees, result.Nmin, result.NumAttr

        if cfg.plotCSVFile != "" {
            if err := writeSweepCSV(cfg.plotCSVFile, result.Points); err != nil {
                logger.Warn("writing sweep csv", zap.Error(err))
            } else {
                logger.Info("sweep csv written", zap.String("path", cfg.plotCSVFile))
            }
        }
        if cfg.plotFile != "" {
            if err := plotSweepPNG(cfg.plotFile, result.Points); err != nil {
                logger.Warn("plotting sweep", zap.Error(err))
            } else {
                logger.Info("sweep chart written", zap.String("path", cfg.plotFile))
            }
        }
    } else {
        fmt.Printf("parameters: numtrees = %d, nmin = %d, numattr = %d\n", numTrees, nmin, numAttr)
        fmt.Printf("building forest of %d trees...", numTrees)
        forest = models.BuildForest(set, numTrees, nmin, numAttr, rnd)
        fmt.Println(" done")

        fmt.Print("accuracy on training set with one tree...")
        correct := 0
        for i, x := range set.FeatureVectors {
            label := forest.IndexToLabel[forest.Trees[0].ClassifyIndex(x)]
            if label == set.Labels[i] { correct++ }
        }
        fmt.Printf(" %g\n", float64(correct)/float64(set.NumExamples()))

        fmt.Print("accuracy on training set with forest...")
        fmt.Printf(" %g\n", forest.Accuracy(set))
    }

    if err := models.WriteModelFile(cfg.modelFile, set, forest, nmin, numAttr, layers); err != nil {
        logger.Fatal("writing model", zap.Error(err))
    }
    logger.Info("model saved",
        zap.String("path", cfg.modelFile),
        zap.Int("numtrees", numTrees),
        zap.Int("nmin", nmin),
        zap.Int("numattr", numAttr))
}

func writeSweepCSV(path string, points []models.GridPointResult) error {
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()
    w := csv.NewWriter(f)
    defer w.Flush()
    if err := w.Write([]string{"numtrees", "nmin", "numattr", "accuracy"}); err != nil { return err }
    for _, p := range points {
        rec := []string{
            strconv.Itoa(p.NumTrees), strconv.Itoa(p.Nmin), strconv.Itoa(p.NumAttr),
            strconv.FormatFloat(p.Accuracy, 'f', 6, 64),
        }
        if err := w.Write(rec); err != nil { return err }
    }
    return w.Error()
}

// plotSweepPNG charts mean accuracy against numattr, one line per
// (numtrees, nmin) pair.
func plotSweepPNG(path string, points []models.GridPointResult) error {
    p := plot.New()
    p.Title.Text = "Hyperparameter Sweep"
    p.X.Label.Text = "numattr"
    p.Y.Label.Text = "mean accuracy"
    p.Y.Min = 0
    p.Y.Max = 1

    series := make(map[string]plotter.XYs)
    var order []string
    for _, pt := range points {
        key := fmt.Sprintf("trees=%d nmin=%d", pt.NumTrees, pt.Nmin)
        if _, ok := series[key]; !ok { order = append(order, key) }
        series[key] = append(series[key], plotter.XY{X: float64(pt.NumAttr), Y: pt.Accuracy})
    }

    var args []interface{}
    for _, key := range order {
        pts := series[key]
        sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
        args = append(args, key, pts)
    }
    if err := plotutil.AddLinePoints(p, args...); err != nil { return err }
    return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
