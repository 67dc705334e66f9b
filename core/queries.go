package core

// GraphQL query shapes consumed by the retrieval orchestrator. Each is
// cursor-paginated; the $cursor variable is injected by the pagination
// driver, never by callers.

// reposQuery fetches organization repositories ordered by recent pushes.
const reposQuery = `
query($org: String!, $cursor: String) {
  organization(login: $org) {
    repositories(first: 100, after: $cursor, orderBy: {field: PUSHED_AT, direction: DESC}) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        name
        isArchived
        isFork
        pushedAt
      }
    }
  }
}
`

// prsQuery fetches pull requests for one repository, newest first.
// Window filtering happens downstream on createdAt.
const prsQuery = `
query($owner: String!, $repo: String!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    pullRequests(first: 100, after: $cursor, orderBy: {field: CREATED_AT, direction: DESC}) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        number
        createdAt
        mergedAt
        state
        author { login }
        additions
        deletions
      }
    }
  }
}
`

// reviewsQuery fetches reviews for one pull request.
const reviewsQuery = `
query($owner: String!, $repo: String!, $prNumber: Int!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $prNumber) {
      reviews(first: 100, after: $cursor) {
        pageInfo {
          hasNextPage
          endCursor
        }
        nodes {
          author { login }
          submittedAt
          state
        }
      }
    }
  }
}
`

// commitsQuery fetches default-branch commit history since a timestamp.
const commitsQuery = `
query($owner: String!, $repo: String!, $since: GitTimestamp!, $cursor: String) {
  repository(owner: $owner, name: $repo) {
    defaultBranchRef {
      target {
        ... on Commit {
          history(first: 100, after: $cursor, since: $since) {
            pageInfo {
              hasNextPage
              endCursor
            }
            nodes {
              author {
                user { login }
                name
                date
              }
              additions
              deletions
            }
          }
        }
      }
    }
  }
}
`
