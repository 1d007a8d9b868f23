package movie

// Sample returns a fresh copy of the bundled demo record, shaped like a decoded JSON object.
func Sample() map[string]any {
	return map[string]any{
		"title":    "罗小黑战记2",
		"genres":   []any{"动画", "奇幻"},
		"director": "MTJJ",
		"actors":   []any{"山新", "郝祥海"},
		"summary":  "小黑的奇幻冒险故事继续展开。",
		"rating": map[string]any{
			"score": 9.3,
			"count": float64(120000),
			"details": []any{
				map[string]any{"score": float64(5), "proportion": 0.85},
				map[string]any{"score": float64(4), "proportion": 0.10},
				map[string]any{"score": float64(3), "proportion": 0.03},
			},
		},
		"reviews": []any{"很治愈！", "比第一部更精彩"},
		"popularity": map[string]any{
			"wish_count":     float64(500000),
			"watched_count":  float64(300000),
			"trending_score": float64(98),
			"news_score":     float64(80),
			"video_score":    float64(85),
			"box_office":     float64(120000000),
		},
	}
}
