package wordfreq

// EnglishStopWords is a short list of English function words that rarely
// belong in a tag cloud.
var EnglishStopWords = []string{
	"a", "about", "after", "all", "also", "am", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "before", "being", "but", "by",
	"can", "could", "did", "do", "does", "for", "from",
	"had", "has", "have", "he", "her", "here", "him", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "just",
	"me", "more", "most", "my", "no", "not", "now",
	"of", "on", "one", "only", "or", "other", "our", "out", "over",
	"said", "she", "so", "some", "such",
	"than", "that", "the", "their", "them", "then", "there", "these", "they", "this", "those", "to", "too",
	"up", "us", "very", "was", "we", "were", "what", "when", "where", "which", "while", "who", "will", "with", "would",
	"you", "your",
}
