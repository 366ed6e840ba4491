// Package prompts holds the LLM prompt templates used for CV field
// extraction and criteria scoring.
package prompts

// CVExtraction instructs the model to reduce a CV PDF to the structured
// JSON shape the pipeline persists. Key names here are load-bearing:
// stored documents are decoded against them, so they must not change
// (including "researchs and publications").
const CVExtraction = `Analyze this PDF CV/Resume and extract structured data in JSON format.

Return a JSON object with this exact structure:
{
    "personal_info": {
        "name": "Full name",
        "email": "email address",
        "phone": "phone number",
        "address": "address",
        "linkedin": "LinkedIn URL",
        "website": "personal website URL",
        "github": "GitHub URL",
        "medium": "Medium URL"
    },
    "professional_summary": "Summary text",
    "work_experience": [
        {
            "company": "Company name",
            "position": "Job title",
            "start_date": "Start date",
            "end_date": "End date or 'Present'",
            "description": "Job description",
            "achievements": ["Achievement 1", "Achievement 2"]
        }
    ],
    "education": [
        {
            "institution": "University name",
            "degree": "Degree type",
            "field": "Field of study",
            "graduation_year": "Year",
            "gpa": "GPA if available",
            "class": "Class achieved"
        }
    ],
    "skills": {
        "technical_skills": ["Skill 1", "Skill 2"],
        "soft_skills": ["Skill 1", "Skill 2"],
        "languages": ["Language 1", "Language 2"]
    },
    "certifications": ["Cert 1", "Cert 2"],
    "projects": [
        {
            "name": "Project name",
            "description": "Project description",
            "technologies": ["Tech 1", "Tech 2"],
            "repository": "Repository URL",
            "url": "Live URL"
        }
    ],
    "researchs and publications": [
        {
            "name": "Research/publication name",
            "duration": "Duration",
            "key_areas": "Key areas",
            "achievements": "Achievements",
            "links": "Attached link with description"
        }
    ],
    "interest": ["Interest 1", "Interest 2"],
    "volunteer": ["Volunteering 1", "Volunteering 2"],
    "achievements": ["Achievement 1", "Achievement 2"],
    "references": [
        {
            "name": "Name",
            "position": "Position",
            "email": "Email address",
            "phone_number": "Mobile number"
        }
    ]
}

Extract only information that is explicitly present in the CV. Use empty strings or arrays for missing information. Return only the JSON object, with no surrounding commentary.`

// CriteriaScoring instructs the model to mark an extracted CV against a
// job's criteria. The caller appends the job description, the criteria
// with their maximum marks, the extracted CV JSON, and any GitHub
// statistics, then decodes the response into a criterion-to-score map.
const CriteriaScoring = `You are an experienced technical recruiter evaluating a candidate's CV against a job posting.

You are given the job description, a set of evaluation criteria each with a maximum mark, the candidate's structured CV data, and optionally a summary of the candidate's GitHub activity.

Assess the candidate against every criterion. Return a JSON object with exactly one entry per criterion name, in this shape:
{
    "<criterion name>": {
        "mark": <number between 0 and the criterion's maximum mark>,
        "max_mark": <the criterion's maximum mark>,
        "explanation": "One or two sentences justifying the mark"
    }
}

Rules:
- Include every criterion you were given, with its name exactly as provided. Do not invent criteria.
- Never award a mark above the criterion's maximum.
- Base the "github_profile" criterion, if present, only on the GitHub statistics provided.
- Ground every explanation in evidence from the CV or GitHub data. If there is no evidence for a criterion, give a low mark and say so.
- Return only the JSON object, with no surrounding commentary.`
