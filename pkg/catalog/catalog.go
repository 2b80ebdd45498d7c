// Package catalog holds the built-in content shown when a live fetch fails.
package catalog

import (
	"slices"

	"github.com/elonfeng/ardalis/pkg/source"
)

var books = []source.Item{
	{
		Kind:        source.KindBooks,
		Title:       "Architecting Modern Web Applications with ASP.NET Core and Microsoft Azure",
		URL:         "https://ardalis.com/architecture-ebook/",
		Description: "Learn how to architect modern web applications using ASP.NET Core and Azure. This free eBook covers architecture patterns, clean code practices, and cloud deployment strategies.",
		Publisher:   "Microsoft",
		Published:   "2023",
	},
}

var courses = []source.Item{
	{
		Kind:        source.KindCourses,
		Title:       "SOLID Principles for C# Developers",
		URL:         "https://www.pluralsight.com/courses/csharp-solid-principles",
		Platform:    "Pluralsight",
		Description: "Learn the SOLID principles of object-oriented design and how to apply them in C# to write maintainable, flexible code.",
	},
	{
		Kind:        source.KindCourses,
		Title:       "Getting Started: Modular Monoliths in .NET",
		URL:         "https://dometrain.com/course/getting-started-modular-monoliths-in-dotnet/?ref=steve-ardalis-smith&coupon_code=ARDALIS",
		Platform:    "Dometrain",
		Description: "A modular monolith breaks up the application into logical modules which are largely independent from one another. This provides many of the benefits of more distributed approaches like microservices without the overhead of deploying and managing a distributed application.",
	},
}

var packages = []source.Item{
	nugetPackage("Ardalis.GuardClauses", "Guard clause extensions for validating method arguments", 36255041),
	nugetPackage("Ardalis.Specification", "Base classes for implementing the Specification pattern", 13083928),
	nugetPackage("Ardalis.Result", "A result abstraction for modeling success/failure without exceptions", 6326436),
	nugetPackage("Ardalis.ApiEndpoints", "A library for organizing API endpoints using MediatR-like handlers", 4437628),
	nugetPackage("Ardalis.SmartEnum", "A type-safe, extensible alternative to enums", 19914393),
	nugetPackage("Ardalis.HttpClientTestExtensions", "Test helpers for testing code that uses HttpClient", 1062914),
	nugetPackage("Ardalis.SharedKernel", "Base types for Domain-Driven Design and Clean Architecture", 414411),
}

// Star counts are unknown offline, so repositories fall back with zero.
var repos = []source.Item{
	githubRepo("CleanArchitecture", "Clean Architecture Solution Template: A proven Clean Architecture Template for ASP.NET Core"),
	githubRepo("Specification", "Base class with tests for adding specifications to a DDD model"),
	githubRepo("GuardClauses", "A simple package with guard clause extensions."),
	githubRepo("Result", "A result abstraction that can be mapped to HTTP response codes if needed."),
	githubRepo("SmartEnum", "A base class for quickly and easily creating strongly typed enum replacements in C#."),
}

var videos = []source.Item{
	{
		Kind:  source.KindVideos,
		ID:    "dotnet",
		Title: ".NET Conf sessions on the .NET YouTube channel",
		URL:   "https://www.youtube.com/@dotnet/playlists",
	},
}

var recent = []source.Item{
	{
		Kind:     source.KindRecent,
		Title:    "Latest articles on the Ardalis blog",
		URL:      "https://ardalis.com/blog",
		Platform: "Blog",
	},
}

// Defaults returns the fallback collection for kind. The result is a copy the
// caller may modify. Unknown kinds return an empty, non-nil slice.
func Defaults(kind source.Kind) []source.Item {
	switch kind {
	case source.KindBooks:
		return slices.Clone(books)
	case source.KindCourses:
		return slices.Clone(courses)
	case source.KindPackages:
		return slices.Clone(packages)
	case source.KindRepos:
		return slices.Clone(repos)
	case source.KindVideos:
		return slices.Clone(videos)
	case source.KindRecent:
		return slices.Clone(recent)
	}
	return []source.Item{}
}

func nugetPackage(id, description string, downloads int64) source.Item {
	return source.Item{
		Kind:        source.KindPackages,
		ID:          id,
		Title:       id,
		URL:         "https://www.nuget.org/packages/" + id,
		Description: description,
		Popularity:  downloads,
	}
}

func githubRepo(name, description string) source.Item {
	return source.Item{
		Kind:        source.KindRepos,
		ID:          "ardalis/" + name,
		Title:       name,
		URL:         "https://github.com/ardalis/" + name,
		Description: description,
	}
}
