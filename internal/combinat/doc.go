// Package combinat provides the combinatorial objects behind the q-analogue
// functions: integer partitions and Dyck words with their area and bounce
// statistics.
package combinat
