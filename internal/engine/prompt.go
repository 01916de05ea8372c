package engine

// LLM prompt templates. Data only.

// explainSystemPrompt is the static system instruction for moment analysis.
const explainSystemPrompt = "You are an AI assistant that analyzes video transcripts."

// explainPrompt asks the model to place a transcript excerpt in the context of the whole video.
// Args: full transcript, excerpt.
const explainPrompt = `Here's the full transcript of a video:

%s

And here's a specific part of the transcript:

%s

Please analyze what this specific part means in the context of the entire video. Provide a concise summary and any relevant insights.`
