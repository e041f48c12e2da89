// Package scitree induces decision trees and weighted, boosted random
// forests over tables that mix categorical and continuous attributes.
//
// Trees are grown greedily with a purity and balance split score.
// Continuous attributes are split by a few GreaterThan thresholds chosen
// center-out from their sorted values. Validation hold-outs and minimum
// subset sizes prune the tree, and nodes that cannot be split usefully
// become distribution leaves that predict by a weighted random draw.
//
// Forests bag ceil(sqrt(rows)) rows and ceil(sqrt(attributes)) attributes
// per tree. With boosting enabled, each tree carries a weight in [0, 1]
// that is nudged toward trees voting for the true outcome of mispredicted
// training rows; a tree whose weight reaches zero is rebuilt.
//
// # Installation
//
//	go get github.com/YuminosukeSato/scitree
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scitree/core/table"
//	    "github.com/YuminosukeSato/scitree/forest"
//	    "github.com/YuminosukeSato/scitree/tree"
//	)
//
//	func main() {
//	    tbl, err := table.New([]string{"Name", "Gender", "Age", "Born"}, []table.Row{
//	        table.MustRow("William", "male", 37, "Germany"),
//	        table.MustRow("Minnie", "female", 16, "Texas"),
//	        table.MustRow("Theo", "male", 17, "Texas"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    t, err := tree.Build(tbl, "Born")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(t)
//
//	    f, err := forest.New(tbl, "Born", forest.WithBoost(true))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    born, err := f.Predict(table.MustRow("Sophie", "female", 17))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(born)
//	}
//
// # Packages
//
//   - core/table: the read-only table of categorical and numeric values
//   - core/random: the injected, reseedable random source
//   - core/parallel: bounded worker fan-out
//   - core/model: shared model interfaces and fitted-state tracking
//   - tree: split scoring, discretization, tree induction and prediction
//   - forest: bagging, boosting and weighted voting
//   - metrics: accuracy, regression errors and benchmark summaries
//   - preprocessing: CSV reading and numeric coercion
//   - pkg/errors: structured errors and warnings
//   - pkg/log: structured logging on zerolog
//
// # Concurrency
//
// Forest members are built on a bounded worker group. Per-tree seeds are
// drawn in order from the forest's generator first, so a given seed yields
// the same forest regardless of the worker count. Built trees and forests
// are safe for concurrent prediction.
package scitree
