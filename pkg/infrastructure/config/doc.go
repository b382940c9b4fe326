// Package config loads the YAML files fibercalc reads: an optional
// calibration overlay that replaces rows of the built-in reference tables,
// and request files that describe one solve, estimate or cast-on
// calculation. Watch re-loads a request file on every save.
//
// Calibration overlay:
//
//	yarn_weights:
//	  - weight: worsted
//	    yards_per_square_inch: 0.8
//	    yards_per_gram: 2.0
//	    baseline_stitches_per_inch: 4.5
//	    baseline_rows_per_inch: 6
//	shape_factors:
//	  triangle: 0.55
//	stitch_patterns:
//	  - name: bobbles
//	    multiplier: 1.5
//
// Request file:
//
//	solve:
//	  rules: ["6+2", "4"]
//	  min_width: 40
//	  max_width: 80
//	  edge_stitches: 2
//	estimate:
//	  width: 40
//	  height: 60
//	  yarn_weight: worsted
//	  skein_length: 220
package config
