package main

import (
    "encoding/csv"
    "flag"
    "fmt"
    "math"
    "os"
    "strconv"

    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"

    "go.uber.org/zap"

    "extratrees/internal/data"
    "extratrees/internal/dataset"
    "extratrees/internal/models"
    "extratrees/internal/rng"
    "extratrees/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    dataPath := flag.String("data", "data/synthetic.csv", "input CSV; generated when -regen is set")
    regen := flag.Bool("regen", false, "regenerate the synthetic dataset before analyzing")
    n := flag.Int("n", 5000, "number of synthetic examples")
    genFeatures := flag.Int("features", 8, "number of synthetic feature columns")
    genClasses := flag.Int("classes", 3, "number of synthetic classes")
    labelColumn := flag.String("y", "", "label column name (default is last column)")
    numTrees := flag.Int("numtrees", 50, "trees per forest")
    nmin := flag.Int("nmin", 4, "minimum number of examples for a split")
    numAttr := flag.Int("numattr", 0, "attributes sampled per split; 0 means ceil(sqrt(num features))")
    points := flag.Int("points", 8, "number of curve points")
    outImg := flag.String("out_img", "data/learning_curve.png", "output PNG")
    outCsv := flag.String("out_csv", "data/learning_curve.csv", "output CSV")
    flag.Parse()

    rnd := rng.New()

    if *regen {
        logger.Info("generating synthetic dataset",
            zap.Int("n", *n), zap.Int("features", *genFeatures), zap.Int("classes", *genClasses),
            zap.String("out", *dataPath))
        params := data.Params{N: *n, Features: *genFeatures, Classes: *genClasses}
        if err := data.GenerateSyntheticCSV(*dataPath, params, rnd); err != nil {
            logger.Fatal("generating dataset", zap.Error(err))
        }
    }

    set, err := dataset.LoadFile(*dataPath, *labelColumn, map[string]bool{"id": true}, true)
    if err != nil { logger.Fatal("reading data", zap.Error(err)) }
    logger.Info("examples read", zap.Int("n", set.NumExamples()), zap.Int("features", set.NumFeatures()))

    if *numAttr == 0 {
        *numAttr = int(math.Ceil(math.Sqrt(float64(set.NumFeatures()))))
    }

    train, test := set.Split(rnd, 0.8)

    sizes := make([]int, 0, *points)
    for i := 1; i <= *points; i++ {
        s := i * train.NumExamples() / *points
        if s < 2 { s = 2 }
        sizes = append(sizes, s)
    }

    trainAcc := make([]float64, len(sizes))
    testAcc := make([]float64, len(sizes))
    for k, s := range sizes {
        sub := &dataset.Set{
            Names:          train.Names,
            LabelName:      train.LabelName,
            LabelSet:       train.LabelSet,
            FeatureVectors: train.FeatureVectors[:s],
            Labels:         train.Labels[:s],
        }
        f := models.BuildForest(sub, *numTrees, *nmin, *numAttr, rnd)
        trainAcc[k] = f.Accuracy(sub)
        testAcc[k] = f.Accuracy(test)
        fmt.Printf("size=%d | train=%.3f | test=%.3f\n", s, trainAcc[k], testAcc[k])
    }

    if err := writeCurveCSV(*outCsv, sizes, trainAcc, testAcc); err != nil {
        logger.Warn("writing curve csv", zap.Error(err))
    } else {
        logger.Info("curve csv written", zap.String("path", *outCsv))
    }
    if err := plotCurve(*outImg, sizes, trainAcc, testAcc); err != nil {
        logger.Warn("plotting curve", zap.Error(err))
    } else {
        logger.Info("curve chart written", zap.String("path", *outImg))
    }
}

func writeCurveCSV(path string, sizes []int, trainAcc, testAcc []float64) error {
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()
    w := csv.NewWriter(f)
    defer w.Flush()
    if err := w.Write([]string{"size", "train_acc", "test_acc"}); err != nil { return err }
    for i := range sizes {
        rec := []string{strconv.Itoa(sizes[i]),
            strconv.FormatFloat(trainAcc[i], 'f', 6, 64),
            strconv.FormatFloat(testAcc[i], 'f', 6, 64)}
        if err := w.Write(rec); err != nil { return err }
    }
    return w.Error()
}

func plotCurve(path string, sizes []int, trainAcc, testAcc []float64) error {
    p := plot.New()
    p.Title.Text = "Learning Curve"
    p.X.Label.Text = "training examples"
    p.Y.Label.Text = "accuracy"
    p.Y.Min = 0
    p.Y.Max = 1

    toXY := func(xs []int, ys []float64) plotter.XYs {
        pts := make(plotter.XYs, len(xs))
        for i := range xs { pts[i].X = float64(xs[i]); pts[i].Y = ys[i] }
        return pts
    }
    if err := plotutil.AddLinePoints(p, "train", toXY(sizes, trainAcc), "test", toXY(sizes, testAcc)); err != nil {
        return err
    }
    return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
