package classifier

import (
	"fmt"
	"strings"
)

// Report renders per-class precision/recall/F1 plus accuracy and averages
// for a truth/prediction pair. It is computed on whatever the caller passes
// in; the location-mode diagnostic deliberately passes the training set
// itself, so the numbers describe rule interpolation, not generalization.
// Undefined ratios are reported as zero.
func Report(truth, pred []bool) string {
	var tp, fp, tn, fn float64
	for i := range truth {
		switch {
		case truth[i] && pred[i]:
			tp++
		case !truth[i] && pred[i]:
			fp++
		case truth[i] && !pred[i]:
			fn++
		default:
			tn++
		}
	}
	total := float64(len(truth))

	// Per-class stats, negative class first to match the display order of
	// the original diagnostic panel.
	negPrec := safeDiv(tn, tn+fn)
	negRec := safeDiv(tn, tn+fp)
	negF1 := f1(negPrec, negRec)
	negSup := tn + fp

	posPrec := safeDiv(tp, tp+fp)
	posRec := safeDiv(tp, tp+fn)
	posF1 := f1(posPrec, posRec)
	posSup := tp + fn

	accuracy := safeDiv(tp+tn, total)
	macroPrec := (negPrec + posPrec) / 2
	macroRec := (negRec + posRec) / 2
	macroF1 := (negF1 + posF1) / 2
	wPrec := safeDiv(negSup*negPrec+posSup*posPrec, total)
	wRec := safeDiv(negSup*negRec+posSup*posRec, total)
	wF1 := safeDiv(negSup*negF1+posSup*posF1, total)

	var b strings.Builder
	fmt.Fprintf(&b, "%14s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")
	fmt.Fprintf(&b, "%14s %9.2f %9.2f %9.2f %9.0f\n", "False", negPrec, negRec, negF1, negSup)
	fmt.Fprintf(&b, "%14s %9.2f %9.2f %9.2f %9.0f\n", "True", posPrec, posRec, posF1, posSup)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%14s %9s %9s %9.2f %9.0f\n", "accuracy", "", "", accuracy, total)
	fmt.Fprintf(&b, "%14s %9.2f %9.2f %9.2f %9.0f\n", "macro avg", macroPrec, macroRec, macroF1, total)
	fmt.Fprintf(&b, "%14s %9.2f %9.2f %9.2f %9.0f\n", "weighted avg", wPrec, wRec, wF1, total)
	return b.String()
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func f1(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
