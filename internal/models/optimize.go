package models

import (
    "fmt"
    "io"
    "os"
    "runtime"
    "sync"

    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    "extratrees/internal/dataset"
    "extratrees/internal/rng"
)

// grid bounds, powers of two
const (
    numTreesMin = 8
    numTreesMax = 1024
    nminMin     = 2
    nminMax     = 256
)

const foldTrainRatio = 0.7

// OptimizeParams configures the hyperparameter sweep. A zero value on an
// axis means sweep it; a positive value pins the axis to that single
// point. A zero NumAttr sweeps 1..F like the other axes; it is not read
// as ceil(sqrt(F)) here, so a pinned NumAttr must already be resolved.
type OptimizeParams struct {
    NumTrees int
    Nmin     int
    NumAttr  int
    Layers   int
    Workers  int       // 0 means one per CPU
    Progress io.Writer // nil means os.Stdout
}

// GridPointResult is one evaluated (numtrees, nmin, numattr) triple with
// its mean accuracy over the folds.
type GridPointResult struct {
    NumTrees int
    Nmin     int
    NumAttr  int
    Accuracy float64
}

// OptimizeResult carries the winning triple, its mean fold accuracy, the
// forest rebuilt over the full set with that triple, and every evaluated
// grid point.
type OptimizeResult struct {
    NumTrees int
    Nmin     int
    NumAttr  int
    Accuracy float64
    Forest   *Forest
    Points   []GridPointResult
}

func axisGrid(pinned, min, max int) []int {
    if pinned > 0 { return []int{pinned} }
    var grid []int
    for v := min; v <= max; v *= 2 {
        grid = append(grid, v)
    }
    return grid
}

// Optimize sweeps the hyperparameter grid against Layers random 70/30
// resamples of set, keeping at most Workers evaluations in flight, then
// trains the winning configuration over the full set. Grid points are
// emitted in lexicographic (numtrees, nmin, numattr) order; the best
// record, completion counter and progress writer share one mutex.
func Optimize(set *dataset.Set, p OptimizeParams, rnd *rng.Rand, logger *zap.Logger) (*OptimizeResult, error) {
    if p.Layers < 1 { p.Layers = 1 }
    if p.Workers < 1 { p.Workers = runtime.NumCPU() }
    out := p.Progress
    if out == nil { out = os.Stdout }

    numTreesGrid := axisGrid(p.NumTrees, numTreesMin, numTreesMax)
    nminGrid := axisGrid(p.Nmin, nminMin, nminMax)
    var numAttrGrid []int
    if p.NumAttr > 0 {
        numAttrGrid = []int{p.NumAttr}
    } else {
        for k := 1; k <= set.NumFeatures(); k++ {
            numAttrGrid = append(numAttrGrid, k)
        }
    }
    totalCombos := len(numTreesGrid) * len(nminGrid) * len(numAttrGrid)

    fmt.Fprintf(out, "total combinations to check: %d\n", totalCombos)
    fmt.Fprintf(out, "total ensembles to build: %d\n", p.Layers*totalCombos)
    logger.Info("hyperparameter sweep starting",
        zap.Int("combinations", totalCombos),
        zap.Int("layers", p.Layers),
        zap.Int("workers", p.Workers))

    // the folds are built up front and shared read-only by every worker,
    // so all grid points are compared on identical resamples
    trainFolds := make([]*dataset.Set, p.Layers)
    testFolds := make([]*dataset.Set, p.Layers)
    for layer := 0; layer < p.Layers; layer++ {
        trainFolds[layer], testFolds[layer] = set.Split(rnd, foldTrainRatio)
    }

    var (
        mu     sync.Mutex
        done   int
        best   GridPointResult
        points []GridPointResult
    )
    best.Accuracy = -1.0

    var g errgroup.Group
    g.SetLimit(p.Workers)

    for _, numTrees := range numTreesGrid {
        for _, nmin := range nminGrid {
            for _, numAttr := range numAttrGrid {
                numTrees, nmin, numAttr := numTrees, nmin, numAttr
                workerRnd := rnd.Fork()
                g.Go(func() error {
                    accuracySum := 0.0
                    for layer := 0; layer < p.Layers; layer++ {
                        f := BuildForest(trainFolds[layer], numTrees, nmin, numAttr, workerRnd)
                        accuracySum += f.Accuracy(testFolds[layer])
                    }
                    point := GridPointResult{
                        NumTrees: numTrees,
                        Nmin:     nmin,
                        NumAttr:  numAttr,
                        Accuracy: accuracySum / float64(p.Layers),
                    }

                    mu.Lock()
                    done++
                    isBest := point.Accuracy > best.Accuracy
                    if isBest {
                        fmt.Fprint(out, "\x1B[7m")
                        best = point
                    }
                    if best.Accuracy >= 0 { fmt.Fprint(out, "\r") }
                    fmt.Fprintf(out, "%3d%%, numtrees = %-4d, nmin = %-3d, numattr = %-3d, accuracy = %-7.5g ",
                        done*100/totalCombos, point.NumTrees, point.Nmin, point.NumAttr, point.Accuracy)
                    fmt.Fprintf(out, " (best: %.3g, %d, %d, %d)   ",
                        best.Accuracy, best.NumTrees, best.Nmin, best.NumAttr)
                    if isBest { fmt.Fprint(out, "\x1B[0m") }
                    points = append(points, point)
                    mu.Unlock()
                    return nil
                })
            }
        }
    }
    if err := g.Wait(); err != nil { return nil, err }

    fmt.Fprintf(out, "\nbest result: numtrees = %d, nmin = %d, numattr = %d, accuracy = %g\n",
        best.NumTrees, best.Nmin, best.NumAttr, best.Accuracy)
    logger.Info("hyperparameter sweep finished",
        zap.Int("numtrees", best.NumTrees),
        zap.Int("nmin", best.Nmin),
        zap.Int("numattr", best.NumAttr),
        zap.Float64("accuracy", best.Accuracy))

    fmt.Fprint(out, "building best forest over whole training set...")
    forest := BuildForest(set, best.NumTrees, best.Nmin, best.NumAttr, rnd)
    fmt.Fprintln(out, " done")

    return &OptimizeResult{
        NumTrees: best.NumTrees,
        Nmin:     best.Nmin,
        NumAttr:  best.NumAttr,
        Accuracy: best.Accuracy,
        Forest:   forest,
        Points:   points,
    }, nil
}
