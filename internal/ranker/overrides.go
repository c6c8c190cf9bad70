package ranker

// Score floors for sentiment-bearing disclosure terms. Floors only raise a
// computed score, never lower it.
var (
	negativeEventFloor = 8
	positiveEventFloor = 6

	negativeEvents = map[string]struct{}{
		"赤字": {}, "損失": {}, "減損": {}, "訴訟": {},
		"倒産": {}, "廃業": {}, "解散": {}, "上場廃止": {},
	}

	positiveEvents = map[string]struct{}{
		"黒字": {}, "増益": {}, "好調": {}, "拡大": {},
		"成長": {}, "提携": {}, "買収": {},
	}
)

func applyFloor(term string, score int) int {
	if _, ok := negativeEvents[term]; ok && score < negativeEventFloor {
		return negativeEventFloor
	}
	if _, ok := positiveEvents[term]; ok && score < positiveEventFloor {
		return positiveEventFloor
	}
	return score
}
