package constant

import "fmt"

// OpeningInstruction is the fixed first turn sent to the model right after
// the session is primed.
const OpeningInstruction = "Start the interview with a brief introduction and first question."

const interviewerSystemPromptTemplate = `You are a professional AI interviewer conducting a %d-minute video interview.

Job Description: %s
Candidate Info: %s

Rules:
1. Ask ONE clear question at a time
2. Wait for response before next question
3. Probe deeper on vague answers
4. Stay professional and focused
5. Generate contextual follow-ups
6. Do NOT reveal your scoring logic
7. Keep responses brief and interviewer-like
8. Track time internally (%d min total)
`

// InterviewerSystemPrompt builds the per-session system instruction from
// the job's role expectations and the candidate's experience text.
func InterviewerSystemPrompt(roleExpectations, candidateExperience string, sessionMinutes int) string {
	return fmt.Sprintf(
		interviewerSystemPromptTemplate,
		sessionMinutes,
		roleExpectations,
		candidateExperience,
		sessionMinutes,
	)
}

const evaluationPromptTemplate = `The interview has ended. The transcript below contains the interviewer turns; %d integrity flags were recorded during the session.

Transcript:
%s

Generate a comprehensive evaluation report in JSON format:
{
    "role_fit": {"skill_alignment": "", "experience_relevance": "", "project_applicability": ""},
    "performance": {"communication_clarity": "", "depth_of_understanding": "", "consistency_with_resume": ""},
    "behavioral_observations": {"confidence_indicators": "", "nervousness_patterns": "", "responsiveness": ""},
    "integrity_score": {"score": 0-100, "suspicious_moments": []},
    "strengths": ["strength1", "strength2"],
    "weaknesses": ["weakness1", "weakness2"],
    "recommendation": "Strong fit / Moderate fit / Weak fit",
    "overall_score": 0-100
}
Respond with ONLY the JSON object. No other text.`

func EvaluationPrompt(transcript string, flagCount int) string {
	return fmt.Sprintf(evaluationPromptTemplate, flagCount, transcript)
}

const roleFitPromptTemplate = `Analyze the candidate's fit for this role.

Job Description:
%s

Candidate Resume:
%s

Provide analysis in JSON format:
{
    "skill_match_level": "high/medium/low",
    "experience_relevance": "detailed assessment",
    "project_alignment": "detailed assessment",
    "analysis_summary": "overall summary",
    "match_score": 0-100
}
Respond with ONLY the JSON object. No other text.`

func RoleFitPrompt(jdText, resumeText string) string {
	return fmt.Sprintf(roleFitPromptTemplate, jdText, resumeText)
}
