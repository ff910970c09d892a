package catalog

import (
	"fmt"

	"github.com/abhisek/skilldash/internal/assessment"
)

const (
	beginner     = assessment.DifficultyBeginner
	intermediate = assessment.DifficultyIntermediate
	advanced     = assessment.DifficultyAdvanced
)

var seedCourses = []Course{
	// Web development
	{
		ID: "html-css-fundamentals", Title: "HTML & CSS Fundamentals", Duration: "2 weeks", Difficulty: beginner,
		Description: "Semantic markup, the box model, flexbox and responsive layouts.",
		Skills:      []string{"HTML/CSS"},
	},
	{
		ID: "javascript-essentials", Title: "JavaScript Essentials", Duration: "3 weeks", Difficulty: beginner,
		Description:   "Variables, functions, closures, ES6 syntax and working with the DOM.",
		Skills:        []string{"JavaScript", "ES6", "DOM Manipulation"},
		Prerequisites: []string{"html-css-fundamentals"},
	},
	{
		ID: "react-development", Title: "React Development", Duration: "4 weeks", Difficulty: intermediate,
		Description:   "Components, props, hooks and state management for single page apps.",
		Skills:        []string{"React", "Hooks", "State Management"},
		Prerequisites: []string{"javascript-essentials"},
	},
	{
		ID: "nodejs-backend", Title: "Node.js Backend", Duration: "4 weeks", Difficulty: intermediate,
		Description:   "HTTP servers, REST APIs, middleware and async I/O with Node.js.",
		Skills:        []string{"Node.js", "REST APIs"},
		Prerequisites: []string{"javascript-essentials"},
	},
	{
		ID: "database-design", Title: "Database Design", Duration: "3 weeks", Difficulty: intermediate,
		Description:   "Relational modelling, normalization, indexes and transactions.",
		Skills:        []string{"Database Design", "SQL"},
		Prerequisites: []string{"sql-essentials"},
	},
	{
		ID: "typescript-in-practice", Title: "TypeScript in Practice", Duration: "2 weeks", Difficulty: intermediate,
		Description:   "Static types, generics and gradual adoption in existing JavaScript code.",
		Skills:        []string{"TypeScript", "JavaScript"},
		Prerequisites: []string{"javascript-essentials"},
	},

	// Data science
	{
		ID: "sql-essentials", Title: "SQL Essentials", Duration: "2 weeks", Difficulty: beginner,
		Description: "Querying, joining and aggregating relational data.",
		Skills:      []string{"SQL"},
	},
	{
		ID: "python-for-data-science", Title: "Python for Data Science", Duration: "3 weeks", Difficulty: beginner,
		Description: "Python syntax, notebooks and the scientific Python ecosystem.",
		Skills:      []string{"Python"},
	},
	{
		ID: "statistics-probability", Title: "Statistics & Probability", Duration: "4 weeks", Difficulty: beginner,
		Description: "Distributions, hypothesis testing and regression.",
		Skills:      []string{"Statistics"},
	},
	{
		ID: "pandas-data-manipulation", Title: "Data Manipulation with Pandas", Duration: "3 weeks", Difficulty: intermediate,
		Description:   "DataFrames, cleaning, grouping and reshaping tabular data.",
		Skills:        []string{"Pandas", "Data Analysis"},
		Prerequisites: []string{"python-for-data-science"},
	},
	{
		ID: "data-visualization", Title: "Data Visualization", Duration: "2 weeks", Difficulty: intermediate,
		Description:   "Telling stories with charts using matplotlib and seaborn.",
		Skills:        []string{"Data Visualization", "Python"},
		Prerequisites: []string{"pandas-data-manipulation"},
	},
	{
		ID: "machine-learning-fundamentals", Title: "Machine Learning Fundamentals", Duration: "5 weeks", Difficulty: advanced,
		Description:   "Supervised and unsupervised learning, evaluation and feature engineering.",
		Skills:        []string{"Machine Learning"},
		Prerequisites: []string{"pandas-data-manipulation", "statistics-probability"},
	},
	{
		ID: "deep-learning", Title: "Deep Learning", Duration: "6 weeks", Difficulty: advanced,
		Description:   "Neural networks, backpropagation, CNNs and transformers.",
		Skills:        []string{"Machine Learning", "Deep Learning"},
		Prerequisites: []string{"machine-learning-fundamentals"},
	},

	// Cloud
	{
		ID: "cloud-computing-basics", Title: "Cloud Computing Basics", Duration: "2 weeks", Difficulty: beginner,
		Description: "Service models, regions, pricing and the shared responsibility model.",
		Skills:      []string{"Cloud"},
	},
	{
		ID: "aws-fundamentals", Title: "AWS Fundamentals", Duration: "4 weeks", Difficulty: intermediate,
		Description:   "EC2, S3, IAM and VPC networking on Amazon Web Services.",
		Skills:        []string{"AWS"},
		Prerequisites: []string{"cloud-computing-basics"},
	},
	{
		ID: "azure-fundamentals", Title: "Azure Fundamentals", Duration: "3 weeks", Difficulty: intermediate,
		Description:   "Core Azure services, resource groups and identity.",
		Skills:        []string{"Azure"},
		Prerequisites: []string{"cloud-computing-basics"},
	},
	{
		ID: "container-technologies", Title: "Container Technologies", Duration: "3 weeks", Difficulty: intermediate,
		Description:   "Images, registries and running services with Docker.",
		Skills:        []string{"Docker"},
		Prerequisites: []string{"cloud-computing-basics"},
	},
	{
		ID: "kubernetes-orchestration", Title: "Kubernetes Orchestration", Duration: "4 weeks", Difficulty: advanced,
		Description:   "Pods, deployments, services and operating clusters.",
		Skills:        []string{"Kubernetes"},
		Prerequisites: []string{"container-technologies"},
	},
	{
		ID: "devops-practices", Title: "DevOps Practices", Duration: "3 weeks", Difficulty: intermediate,
		Description:   "CI/CD pipelines, infrastructure as code and observability.",
		Skills:        []string{"DevOps"},
		Prerequisites: []string{"container-technologies"},
	},
}

var seedPaths = []Path{
	{
		ID:            "full-stack-web-developer",
		Title:         "Full Stack Web Developer",
		Description:   "Complete pathway to become a professional full-stack developer with modern technologies.",
		EstimatedTime: "6 months",
		Difficulty:    intermediate,
		Skills:        []string{"HTML/CSS", "JavaScript", "React", "Node.js", "Database Design"},
		CourseIDs: []string{
			"html-css-fundamentals", "javascript-essentials", "react-development",
			"nodejs-backend", "sql-essentials", "database-design",
		},
	},
	{
		ID:            "data-science-professional",
		Title:         "Data Science Professional",
		Description:   "Master data science from statistics to machine learning and AI applications.",
		EstimatedTime: "8 months",
		Difficulty:    advanced,
		Skills:        []string{"Python", "Statistics", "Machine Learning", "Data Visualization", "SQL"},
		CourseIDs: []string{
			"python-for-data-science", "statistics-probability", "pandas-data-manipulation",
			"data-visualization", "machine-learning-fundamentals", "deep-learning",
		},
	},
	{
		ID:            "cloud-solutions-architect",
		Title:         "Cloud Solutions Architect",
		Description:   "Design and implement scalable cloud infrastructure and services.",
		EstimatedTime: "5 months",
		Difficulty:    advanced,
		Skills:        []string{"AWS", "Azure", "Docker", "Kubernetes", "DevOps"},
		CourseIDs: []string{
			"cloud-computing-basics", "aws-fundamentals", "azure-fundamentals",
			"container-technologies", "kubernetes-orchestration", "devops-practices",
		},
	},
}

func init() {
	if err := validateCatalog(seedCourses, seedPaths); err != nil {
		panic(fmt.Sprintf("invalid seed catalog: %v", err))
	}
	c = buildCatalog(seedCourses, seedPaths)
}
