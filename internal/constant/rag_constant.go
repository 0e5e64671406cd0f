package constant

const (
	// SourceFAQ labels the built-in seed corpus in chunk metadata.
	SourceFAQ = "FAQ"

	SessionHeader = "X-Session-Id"
)

// GenerationModelCandidates is tried in order; the first model that accepts
// the caller's credentials at construction time handles the request.
var GenerationModelCandidates = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}

// AnswerPromptTemplate takes the joined context followed by the question.
const AnswerPromptTemplate = `Based on the following financial information, answer the user's question accurately and helpfully.

Context:
%s

Question: %s

Answer: Provide a clear, accurate response based on the context. If the context doesn't contain enough information, say so.`

// FAQCorpus seeds every new session with ten finance Q&A chunks.
var FAQCorpus = []string{
	"What is a savings account? A savings account is a deposit account that earns interest and provides easy access to your money.",
	"How do I apply for a credit card? You can apply for a credit card online, by phone, or at a branch location.",
	"What is compound interest? Compound interest is interest calculated on the initial principal and accumulated interest.",
	"How do I check my account balance? You can check your balance online, through mobile app, ATM, or by calling customer service.",
	"What are the fees for wire transfers? Domestic wire transfers typically cost $15-30, international transfers cost $35-50.",
	"How do I set up direct deposit? Contact your employer's HR department and provide your bank routing and account numbers.",
	"What is the difference between checking and savings? Checking accounts are for daily transactions, savings accounts earn interest.",
	"How do I report a lost or stolen card? Call the customer service number immediately or use the mobile app to report it.",
	"What is APR? Annual Percentage Rate includes interest rate plus other fees expressed as a yearly rate.",
	"How do I dispute a transaction? Contact customer service within 60 days or use online banking to file a dispute.",
}
