package session

// Question is one operator interview prompt. Topic is the short English
// label shown in listings and fed to narrative generation; Prompt is the
// full question text presented to the operator.
type Question struct {
	ID     string
	Topic  string
	Prompt string
}

var interviewQuestions = []Question{
	{ID: "q1", Topic: "founding hardships", Prompt: "創業当時、一番ご苦労されたことは何でしたか？どのような困難を乗り越え、どのようなお気持ちで続けてこられたのでしょうか？"},
	{ID: "q2", Topic: "name origin", Prompt: "お店の名前には、どのような想いや由来が込められておりますか？"},
	{ID: "q3", Topic: "changes since opening", Prompt: "開業以来、ご自身で「変わったな」と感じることはございますか？"},
	{ID: "q4", Topic: "choice of location", Prompt: "この場所をお選びになった理由があれば、お聞かせいただけますか？"},
	{ID: "q5", Topic: "reason for starting", Prompt: "そもそもこのお店を始められた「きっかけ」は何だったのでしょうか？"},
	{ID: "q6", Topic: "message to guests", Prompt: "お店を通して、「これだけはお客様にお伝えしたい」と思っておられることは何でしょうか？"},
	{ID: "q7", Topic: "happiest moments", Prompt: "お客様が帰られる際、どのような表情であれば「今日もやって良かった」と感じられますか？"},
	{ID: "q8", Topic: "signature dish story", Prompt: "お店の看板とも言える一品と、その料理に込められたストーリーを教えていただけますか？"},
	{ID: "q9", Topic: "uncompromising principles", Prompt: "メニューを考える際、特に大切にしていること・譲れない軸はございますか？"},
	{ID: "q10", Topic: "guests from overseas", Prompt: "外国からのお客様には、どのような体験を持ち帰っていただきたいとお考えですか？"},
	{ID: "q11", Topic: "sense of Japan", Prompt: "あなたが最も伝えたい「日本らしさ」や、文化的な要素があれば教えてください。"},
	{ID: "q12", Topic: "one line to the world", Prompt: "世界中の方々に向けて、お店や料理を一言でご紹介するとしたら、どのような言葉になりますか？"},
	{ID: "q13", Topic: "future of the place", Prompt: "このお店を、これからどのような場所にしていきたいとお考えでしょうか？"},
	{ID: "q14", Topic: "vision in ten years", Prompt: "5年後・10年後、「この道を選んで良かった」と思える未来は、どのような姿でしょうか？"},
	{ID: "q15", Topic: "gratitude to guests", Prompt: "これまでお越しいただいたすべてのお客様に対して、いま改めてお伝えになりたい一言があれば、ぜひお聞かせください。"},
}

// Questions returns the fixed interview questions in order.
func Questions() []Question {
	out := make([]Question, len(interviewQuestions))
	copy(out, interviewQuestions)
	return out
}

// QuestionByID resolves one interview question.
func QuestionByID(id string) (Question, bool) {
	for _, q := range interviewQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
