package main

import (
    "flag"
    "fmt"
    "net/http"
    "os"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "extratrees/internal/models"
    "extratrees/pkg/utils"
)

var model *models.LoadedModel

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    modelFile := flag.String("m", "", "model file to serve (required)")
    flag.Parse()
    if *modelFile == "" {
        fmt.Println("command line parameter needed: -m <in:modelfile>")
        flag.PrintDefaults()
        os.Exit(0)
    }

    m, err := models.ReadModelFile(*modelFile)
    if err != nil { logger.Fatal("reading model", zap.Error(err)) }
    model = m
    logger.Info("model loaded",
        zap.String("path", *modelFile),
        zap.Int("numtrees", len(m.Forest.Trees)),
        zap.Int("features", len(m.AttrNames)),
        zap.Int("classes", len(m.Forest.IndexToLabel)))

    r := gin.Default()

    r.GET("/model", handleModel)

    api := r.Group("/")
    api.Use(apiKeyMiddleware)
    api.POST("/predict", handlePredict)
    api.POST("/batch", handleBatch)

    port := os.Getenv("PORT")
    if port == "" { port = "8080" }
    if err := r.Run(":" + port); err != nil {
        logger.Fatal("serving", zap.Error(err))
    }
}

func apiKeyMiddleware(c *gin.Context) {
    key := os.Getenv("API_KEY")
    if key == "" { c.Next(); return }
    got := c.GetHeader("X-API-Key")
    if got != key { c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"}); return }
    c.Next()
}

type predictReq struct {
    Features []float32 `json:"features"`
}

// classify validates the feature vector length and returns the predicted
// label alongside the per-class vote counts.
func classify(features []float32) (int, []int, error) {
    if len(features) != len(model.AttrNames) {
        return 0, nil, fmt.Errorf("expected %d features, got %d", len(model.AttrNames), len(features))
    }
    votes := model.Forest.Votes(features)
    return model.Forest.Classify(features), votes, nil
}

func handlePredict(c *gin.Context) {
    var req predictReq
    if err := c.BindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"}); return
    }
    label, votes, err := classify(req.Features)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}); return
    }
    c.JSON(http.StatusOK, gin.H{
        "label":  label,
        "votes":  votes,
        "labels": model.Forest.IndexToLabel,
    })
}

func handleBatch(c *gin.Context) {
    var items []predictReq
    if err := c.BindJSON(&items); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"}); return
    }
    out := make([]gin.H, len(items))
    for i, it := range items {
        label, votes, err := classify(it.Features)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("item %d: %s", i, err)}); return
        }
        out[i] = gin.H{"label": label, "votes": votes}
    }
    c.JSON(http.StatusOK, out)
}

func handleModel(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
        "label_name":     model.LabelName,
        "labels":         model.Forest.IndexToLabel,
        "feature_names":  model.AttrNames,
        "excluded_names": model.ExNames,
        "numtrees":       model.NumTrees,
        "nmin":           model.Nmin,
        "numattr":        model.NumAttr,
        "layers":         model.OptLayers,
    })
}
