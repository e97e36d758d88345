package tokenize

import "strings"

// The keyword extractor serves pages with mixed English and Bangla comment
// traffic, so the stopword set covers both languages. The lists are fixed
// lookups, not learned.
const englishStopwords = `a an and the of to in for on at by with about between into over from as is are was were be been being than then that this these those there here it its it's their theirs our ours your yours i me my mine we us you he him his she her they them who whom which what why how not no nor so such too very can will just do does did have has had up down out more most other some any each few own same s t don should now`

const banglaStopwords = `আমি আমরা তুমি আপনি তারা সে এই সেই ওই কোন কি বা আর এবং তবে কিন্তু তাই শুধু যেন যেই যে যদি যখন যদিও যা যার যারাই যারা যেখানে ছিল ছিলাম হবে করেছি করব করি করা করে করছেন করছেনা তো না নয় হয় হচ্ছে আছে ছিলেন হতে পারে পর্যন্ত খুব অনেক আরো আরও আবার তাহলে এখানে সেখানে তাদের সঙ্গে জন্য কারণ ফলে উপর নিচ আগে পরে মধ্যে আমার তোমার তার তোমাদের আমাদের আরেকটা কিছু কিছুটা কেউ কোনটা কোনগুলো দিয়ে গেছে যায় হয়েই হল হলো হওয়া হওয়ার নই নাও নেন নেওয়া হয়েছে হয়নি কেন কিভাবে কেনো কেনও ইত্যাদি`

var stopwords = buildStopwords(englishStopwords, banglaStopwords)

func buildStopwords(lists ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range strings.Fields(list) {
			set[w] = struct{}{}
		}
	}
	return set
}
