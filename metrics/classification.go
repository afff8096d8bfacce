// Package metrics は分類モデルの評価指標を提供します。
package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// logLossEps はlog(0)を避けるためのクリッピング幅
const logLossEps = 1e-15

// checkPair は入力ベクトルの長さを検証する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.Wrapf(errors.ErrEmptyData, "%s", op)
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewShapeError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

func checkBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewConfigurationError("y_true", op+": labels must be 0 or 1", v)
		}
	}
	return nil
}

// AUC はROC曲線下面積を計算する。同順位のスコアには平均順位を割り当てる。
// 片方のクラスしか存在しない場合は0.5を返す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("AUC", yTrue); err != nil {
		return 0, err
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = yPred.AtVec(i)
	}
	idx := make([]int, n)
	floats.Argsort(scores, idx)

	// Mann-Whitney U: 正例の順位和から計算
	var rankSum float64
	var nPos int
	for i := 0; i < n; {
		j := i
		for j+1 < n && scores[j+1] == scores[i] {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(idx[k]) == 1 {
				rankSum += avgRank
				nPos++
			}
		}
		i = j + 1
	}

	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}
	u := rankSum - float64(nPos*(nPos+1))/2
	return u / float64(nPos*nNeg), nil
}

// BinaryLogLoss は二値交差エントロピーを計算する。確率は[eps, 1-eps]に
// クリップされる。
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), logLossEps, 1-logLossEps)
		if yTrue.AtVec(i) == 1 {
			sum -= errors.StabilizeLog(p, logLossEps)
		} else {
			sum -= errors.StabilizeLog(1-p, logLossEps)
		}
	}
	return sum / float64(n), nil
}

// Accuracy は予測ラベルが正解と一致する割合を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var correct int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は 1 - Accuracy
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BrierScore は確率予測の平均二乗誤差を計算する
func BrierScore(yTrue, yProb *mat.VecDense) (float64, error) {
	n, err := checkPair("BrierScore", yTrue, yProb)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("BrierScore", yTrue); err != nil {
		return 0, err
	}
	diff := mat.NewVecDense(n, nil)
	diff.SubVec(yProb, yTrue)
	return mat.Dot(diff, diff) / float64(n), nil
}

// Threshold は確率を0/1のラベルに変換する
func Threshold(yProb *mat.VecDense, threshold float64) *mat.VecDense {
	out := mat.NewVecDense(yProb.Len(), nil)
	for i := 0; i < yProb.Len(); i++ {
		if yProb.AtVec(i) >= threshold {
			out.SetVec(i, 1)
		}
	}
	return out
}

// ColumnVec はフレームの列をベクトルに変換する。Bool列は0/1になる。
func ColumnVec(c frame.Column) *mat.VecDense {
	if c.Len() == 0 {
		return nil
	}
	v := mat.NewVecDense(c.Len(), nil)
	for i := 0; i < c.Len(); i++ {
		v.SetVec(i, c.Float64(i))
	}
	return v
}
