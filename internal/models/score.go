package models

import "math"

// Score rates a candidate split of one attribute column against the class
// labels on the example subset described by indices. The result is the
// symmetric normalized mutual information 2*I(C;S)/(H_S + H_C) in [0, 1];
// a split that leaves every example on one side scores exactly 0.
func Score(attr []float32, labels []int, numClasses int, indices []int, split float32) float64 {
    var numSplit [2]int // {left, right}
    numClass := make([][2]int, numClasses)
    for _, i := range indices {
        side := 0
        if attr[i] >= split { side = 1 }
        numSplit[side]++
        numClass[labels[i]][side]++
    }

    if numSplit[0] == 0 || numSplit[1] == 0 { return 0 }

    rsize := 1.0 / float64(len(indices))

    var mutualInf, classEnt float64
    for _, ci := range numClass {
        if ci[0] == 0 && ci[1] == 0 { continue }

        pClass := float64(ci[0]+ci[1]) * rsize
        classEnt -= pClass * math.Log2(pClass)

        if ci[0] > 0 {
            pClassAndLeft := float64(ci[0]) * rsize
            pClassGivenLeft := float64(ci[0]) / float64(numSplit[0])
            mutualInf -= pClassAndLeft * math.Log2(pClass/pClassGivenLeft)
        }
        if ci[1] > 0 {
            pClassAndRight := float64(ci[1]) * rsize
            pClassGivenRight := float64(ci[1]) / float64(numSplit[1])
            mutualInf -= pClassAndRight * math.Log2(pClass/pClassGivenRight)
        }
    }

    pLeft := float64(numSplit[0]) * rsize
    pRight := float64(numSplit[1]) * rsize
    splitEnt := -pLeft*math.Log2(pLeft) - pRight*math.Log2(pRight)

    return 2 * mutualInf / (splitEnt + classEnt)
}
