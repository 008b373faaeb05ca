package types

// SampleCourses returns the built-in sample outline used to seed an empty
// session for demos. A fresh slice is returned on every call.
func SampleCourses() []Course {
	return []Course{
		{
			ID:   "course1",
			Name: "CSC214 AI Fundamentals",
			Content: []Unit{
				{ID: "unit1", Title: "Unit 1 - Decision Networks", Children: []string{
					"Decisions as Outcome Trees",
					"Example: Decision Networks",
					"Ghostbusters Decision Network",
					"Value of Information",
					"VPI Properties",
					"Value of Imperfect Information",
				}},
				{ID: "unit2", Title: "Unit 2 - Markov Models", Children: []string{
					"Independence",
					"Conditional Independence",
					"The Markov Assumption: Time or Space",
					"Chain Rule or Markov Models",
					"Implied Conditional Independence",
					"Mini-Forward Algorithms",
					"Convergence",
					"Stationary Distributions",
					"Application of Stationary Distributions",
					"Web Search",
					"Hidden Markov Models",
					"Joint Distribution of an HMM",
					"Passage of Time",
					"Observation",
				}},
				{ID: "unit3", Title: "Unit 3 - Bayes Networks: Sampling", Children: []string{
					"Bayes Network Representation",
					"Variable Elimination",
					"Approximate Inference: Sampling",
					"Prior Sampling",
				}},
			},
		},
		{
			ID:   "course2",
			Name: "CSC301 Machine Learning Basics",
			Content: []Unit{
				{ID: "unit1", Title: "Unit 1 - Introduction to ML", Children: []string{
					"What is Machine Learning",
					"Types of Learning",
					"Supervised Learning",
					"Unsupervised Learning",
				}},
				{ID: "unit2", Title: "Unit 2 - Neural Networks", Children: []string{
					"Perceptrons",
					"Activation Functions",
					"Backpropagation",
					"Deep Learning",
				}},
			},
		},
		{
			ID:   "course3",
			Name: "CSC220 Data Structures",
			Content: []Unit{
				{ID: "unit1", Title: "Unit 1 - Arrays and Lists", Children: []string{
					"Array Basics",
					"Linked Lists",
					"Dynamic Arrays",
					"Time Complexity",
				}},
				{ID: "unit2", Title: "Unit 2 - Trees and Graphs", Children: []string{
					"Binary Trees",
					"Tree Traversal",
					"Graph Representation",
					"Graph Algorithms",
				}},
			},
		},
	}
}
