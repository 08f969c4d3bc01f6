package data

import (
    "encoding/csv"
    "fmt"
    "math"
    "os"
    "strconv"

    "extratrees/internal/rng"
)

// Params shapes a synthetic classification CSV: Classes Gaussian clusters
// in Features dimensions, plus an id column and an integer label column.
type Params struct {
    N        int
    Features int
    Classes  int
    Spread   float64 // cluster standard deviation (1.5 when not positive); center c has coordinate j at 10*sin(c*Features+j)
}

// GenerateSyntheticCSV writes n labeled examples drawn from per-class
// Gaussian clusters. The header is id,f0..f{F-1},label; the id column is
// meant for the loader's exclusion list.
func GenerateSyntheticCSV(outPath string, p Params, rnd *rng.Rand) error {
    if p.N < 1 || p.Features < 1 || p.Classes < 2 {
        return fmt.Errorf("bad generator parameters: n=%d features=%d classes=%d", p.N, p.Features, p.Classes)
    }
    if p.Spread <= 0 { p.Spread = 1.5 }

    f, err := os.Create(outPath)
    if err != nil { return err }
    defer f.Close()

    w := csv.NewWriter(f)
    defer w.Flush()

    header := make([]string, 0, p.Features+2)
    header = append(header, "id")
    for j := 0; j < p.Features; j++ {
        header = append(header, "f"+strconv.Itoa(j))
    }
    header = append(header, "label")
    if err := w.Write(header); err != nil { return err }

    centers := make([][]float64, p.Classes)
    for c := range centers {
        centers[c] = make([]float64, p.Features)
        for j := range centers[c] {
            centers[c][j] = 10 * math.Sin(float64(c*p.Features+j))
        }
    }

    for i := 0; i < p.N; i++ {
        c := rnd.Intn(p.Classes)
        rec := make([]string, 0, p.Features+2)
        rec = append(rec, "x"+strconv.Itoa(i))
        for j := 0; j < p.Features; j++ {
            v := centers[c][j] + gaussian(rnd)*p.Spread
            rec = append(rec, strconv.FormatFloat(v, 'f', 4, 64))
        }
        rec = append(rec, strconv.Itoa(c))
        if err := w.Write(rec); err != nil { return err }
    }

    w.Flush()
    return w.Error()
}

// gaussian draws a standard normal value by Box-Muller.
func gaussian(rnd *rng.Rand) float64 {
    u1 := rnd.Float64Range(0, 1)
    for u1 == 0 { u1 = rnd.Float64Range(0, 1) }
    u2 := rnd.Float64Range(0, 1)
    return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
