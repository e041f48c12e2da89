package model

import "github.com/YuminosukeSato/scitree/core/table"

// Predictor は1行に対して目的変数の値を予測するモデルのインターフェース
type Predictor interface {
	// Predict は行の属性値から目的変数の値を予測する
	Predict(row table.Row) (table.Value, error)
}

// Populator は学習データから内部の木を（再）構築できるモデルのインターフェース
type Populator interface {
	// Populate は設定を保持したまま全ての木を作り直す
	Populate() error
}

// Ensemble は重み付き投票を行うアンサンブルモデルのインターフェース
type Ensemble interface {
	Predictor
	Populator
	// Weights は各メンバーの現在の重みを返す
	Weights() []float64
}
