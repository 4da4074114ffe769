package risk

import "strings"

// highRiskKeywords drives the weak-labeling heuristic. Presence of any one
// of these terms marks a document as high risk for training purposes.
//
// This is a stand-in for verified clinical or claims labels: the labels it
// produces carry no ground truth and the heuristic is a documented modeling
// limitation, not a bug. Swapping in real labels only touches this file.
var highRiskKeywords = []string{
	"cancer", "tumor", "metastatic", "oncology", "severe", "malignant",
}

// Label assigns the weak binary risk label: 1 iff the lower-cased text
// contains at least one high-risk keyword. Pure and deterministic.
func Label(text string) int {
	lower := strings.ToLower(text)
	for _, keyword := range highRiskKeywords {
		if strings.Contains(lower, keyword) {
			return 1
		}
	}
	return 0
}
